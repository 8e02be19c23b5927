package simulation

import (
	"context"
	"errors"
	"time"

	"github.com/andrescamacho/colonysim-go/internal/domain/colony"
)

// StaticData resolves immutable game metadata: item volumes and schematic
// definitions. Implemented by the persistence adapter over the static
// database; the simulator core never talks to it directly.
type StaticData interface {
	VolumeOf(ctx context.Context, typeID int64) (float64, error)
	SchematicOf(ctx context.Context, schematicID int64) (*colony.Schematic, error)
}

// ColonyRepository stores and retrieves colony layout snapshots
type ColonyRepository interface {
	Save(ctx context.Context, snapshot *ColonySnapshot) error
	FindByID(ctx context.Context, colonyID int64) (*ColonySnapshot, error)
	List(ctx context.Context) ([]ColonyHeader, error)
}

// ColonyHeader is the listing view of a stored snapshot
type ColonyHeader struct {
	ColonyID       int64
	Name           string
	CheckpointTime time.Time
	Facilities     int
}

var (
	// ErrColonyNotFound indicates no snapshot is stored under the id
	ErrColonyNotFound = errors.New("colony not found")

	// ErrTypeNotFound indicates the static database has no such item type
	ErrTypeNotFound = errors.New("item type not found")

	// ErrSchematicNotFound indicates the static database has no such schematic
	ErrSchematicNotFound = errors.New("schematic not found")
)

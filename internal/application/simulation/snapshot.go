package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/colonysim-go/internal/domain/colony"
)

// ColonySnapshot is the externally-sourced layout of one colony: ids,
// timestamps, and contents, with no resolved metadata. The assembler turns
// it into a domain Colony by resolving volumes and schematics through the
// static-data port.
type ColonySnapshot struct {
	ColonyID       int64              `json:"colonyId" validate:"required,gt=0"`
	Name           string             `json:"name"`
	CheckpointTime time.Time          `json:"checkpointTime" validate:"required"`
	Facilities     []FacilitySnapshot `json:"facilities" validate:"required,min=1,dive"`
	Routes         []RouteSnapshot    `json:"routes" validate:"dive"`
}

// FacilitySnapshot is one pin of the layout. Kind-specific fields are only
// read for their kind.
type FacilitySnapshot struct {
	PinID    int64  `json:"pinId" validate:"required,gt=0"`
	Kind     string `json:"kind" validate:"required,oneof=extractor factory storage launchpad command-center"`
	TypeID   int64  `json:"typeId"`
	IsActive bool   `json:"isActive"`

	LastRunTime time.Time       `json:"lastRunTime,omitempty"`
	Contents    map[int64]int64 `json:"contents,omitempty"`

	// Extractor
	ProductTypeID    int64     `json:"productTypeId,omitempty"`
	BaseValue        int64     `json:"baseValue,omitempty" validate:"gte=0"`
	CycleTimeSeconds int64     `json:"cycleTimeSeconds,omitempty" validate:"gte=0"`
	InstallTime      time.Time `json:"installTime,omitempty"`
	ExpiryTime       time.Time `json:"expiryTime,omitempty"`

	// Factory
	SchematicID             int64     `json:"schematicId,omitempty"`
	LastCycleStartTime      time.Time `json:"lastCycleStartTime,omitempty"`
	HasReceivedInputs       bool      `json:"hasReceivedInputs,omitempty"`
	ReceivedInputsLastCycle bool      `json:"receivedInputsLastCycle,omitempty"`
}

// RouteSnapshot is one directed commodity link of the layout
type RouteSnapshot struct {
	RouteID       int64 `json:"routeId"`
	SourceID      int64 `json:"sourceId" validate:"required"`
	DestinationID int64 `json:"destinationId" validate:"required"`
	TypeID        int64 `json:"typeId" validate:"required"`
	Quantity      int64 `json:"quantity" validate:"gte=0"`
}

// KindFromString maps the snapshot kind tag onto the domain kind
func KindFromString(kind string) (colony.Kind, error) {
	switch kind {
	case "extractor":
		return colony.KindExtractor, nil
	case "factory":
		return colony.KindFactory, nil
	case "storage":
		return colony.KindStorage, nil
	case "launchpad":
		return colony.KindLaunchpad, nil
	case "command-center":
		return colony.KindCommandCenter, nil
	default:
		return 0, fmt.Errorf("unknown facility kind %q", kind)
	}
}

// Assembler builds domain colonies from snapshots, resolving metadata
// through the static-data port
type Assembler struct {
	static StaticData
}

// NewAssembler creates an assembler over the given static-data source
func NewAssembler(static StaticData) *Assembler {
	return &Assembler{static: static}
}

// Assemble turns a validated snapshot into a domain Colony. Degenerate
// references degrade instead of failing the call: a facility whose
// schematic is unknown becomes inert, and a commodity whose volume cannot
// be resolved is left out of the catalog (storage then rejects it).
func (a *Assembler) Assemble(ctx context.Context, snap *ColonySnapshot) (*colony.Colony, error) {
	col := colony.NewColony(snap.ColonyID, snap.Name, snap.CheckpointTime)

	for _, fs := range snap.Facilities {
		kind, err := KindFromString(fs.Kind)
		if err != nil {
			return nil, fmt.Errorf("facility %d: %w", fs.PinID, err)
		}
		f := colony.NewFacility(fs.PinID, kind, fs.TypeID)
		f.IsActive = fs.IsActive || kind.IsStorage()
		f.LastRunTime = fs.LastRunTime
		for typeID, qty := range fs.Contents {
			if qty > 0 {
				f.Contents[typeID] = qty
			}
		}

		switch kind {
		case colony.KindExtractor:
			f.ProductTypeID = fs.ProductTypeID
			f.BaseValue = fs.BaseValue
			f.CycleTime = time.Duration(fs.CycleTimeSeconds) * time.Second
			f.InstallTime = fs.InstallTime
			f.ExpiryTime = fs.ExpiryTime
		case colony.KindFactory:
			f.LastCycleStartTime = fs.LastCycleStartTime
			f.HasReceivedInputs = fs.HasReceivedInputs
			f.ReceivedInputsLastCycle = fs.ReceivedInputsLastCycle
			if fs.SchematicID != 0 {
				schematic, err := a.static.SchematicOf(ctx, fs.SchematicID)
				if err == nil {
					f.Schematic = schematic
				}
				// Unknown schematic: permanently inert, not an error.
			}
		}

		if err := col.AddFacility(f); err != nil {
			return nil, err
		}
	}

	for _, rs := range snap.Routes {
		r, err := colony.NewRoute(rs.RouteID, rs.SourceID, rs.DestinationID, rs.TypeID, rs.Quantity)
		if err != nil {
			continue // malformed route: skipped, not fatal
		}
		col.AddRoute(*r)
	}

	a.resolveCatalog(ctx, col)
	for _, f := range col.Facilities() {
		f.RecomputeCapacity(col.Catalog)
	}
	return col, nil
}

// resolveCatalog looks up the volume of every commodity type the colony
// can possibly hold or move
func (a *Assembler) resolveCatalog(ctx context.Context, col *colony.Colony) {
	wanted := make(map[int64]struct{})
	for _, f := range col.Facilities() {
		for typeID := range f.Contents {
			wanted[typeID] = struct{}{}
		}
		if f.ProductTypeID != 0 {
			wanted[f.ProductTypeID] = struct{}{}
		}
		if f.Schematic != nil {
			wanted[f.Schematic.OutputTypeID] = struct{}{}
			for typeID := range f.Schematic.Inputs {
				wanted[typeID] = struct{}{}
			}
		}
	}
	for _, r := range col.Routes {
		wanted[r.TypeID] = struct{}{}
	}

	for typeID := range wanted {
		volume, err := a.static.VolumeOf(ctx, typeID)
		if err != nil || volume <= 0 {
			continue
		}
		col.Catalog[typeID] = volume
	}
}

// SnapshotFromColony converts a simulated colony back into the snapshot
// form the repository stores. The checkpoint advances to the achieved
// simulation time.
func SnapshotFromColony(col *colony.Colony) *ColonySnapshot {
	snap := &ColonySnapshot{
		ColonyID:       col.ID,
		Name:           col.Name,
		CheckpointTime: col.CurrentSimTime,
	}
	for _, f := range col.Facilities() {
		fs := FacilitySnapshot{
			PinID:       f.ID,
			Kind:        f.Kind.String(),
			TypeID:      f.TypeID,
			IsActive:    f.IsActive,
			LastRunTime: f.LastRunTime,
		}
		if len(f.Contents) > 0 {
			fs.Contents = make(map[int64]int64, len(f.Contents))
			for typeID, qty := range f.Contents {
				fs.Contents[typeID] = qty
			}
		}
		switch f.Kind {
		case colony.KindExtractor:
			fs.ProductTypeID = f.ProductTypeID
			fs.BaseValue = f.BaseValue
			fs.CycleTimeSeconds = int64(f.CycleTime / time.Second)
			fs.InstallTime = f.InstallTime
			fs.ExpiryTime = f.ExpiryTime
		case colony.KindFactory:
			if f.Schematic != nil {
				fs.SchematicID = f.Schematic.ID
			}
			fs.LastCycleStartTime = f.LastCycleStartTime
			fs.HasReceivedInputs = f.HasReceivedInputs
			fs.ReceivedInputsLastCycle = f.ReceivedInputsLastCycle
		}
		snap.Facilities = append(snap.Facilities, fs)
	}
	for _, r := range col.Routes {
		snap.Routes = append(snap.Routes, RouteSnapshot{
			RouteID:       r.ID,
			SourceID:      r.SourceID,
			DestinationID: r.DestinationID,
			TypeID:        r.TypeID,
			Quantity:      r.Quantity,
		})
	}
	return snap
}

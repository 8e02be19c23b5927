package helpers

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/colonysim-go/internal/adapters/persistence"
	"github.com/andrescamacho/colonysim-go/internal/application/simulation"
	"github.com/andrescamacho/colonysim-go/internal/domain/colony"
)

// Static-data fixture ids shared across repository and service tests
const (
	TypeRawOre     int64 = 101
	TypeRawGas     int64 = 102
	TypeRefined    int64 = 201
	SchematicBasic int64 = 301
)

// SeedStaticData loads a minimal item-type catalog and one schematic:
// 3000 raw ore + 10 raw gas -> 5 refined every 30 minutes
func SeedStaticData(t *testing.T, db *gorm.DB) {
	repo := persistence.NewGormStaticDataRepository(db)
	ctx := context.Background()

	items := []struct {
		typeID int64
		name   string
		volume float64
	}{
		{TypeRawOre, "Raw Ore", 0.01},
		{TypeRawGas, "Raw Gas", 0.38},
		{TypeRefined, "Refined Alloy", 1.5},
	}
	for _, it := range items {
		if err := repo.SaveItemType(ctx, it.typeID, it.name, it.volume); err != nil {
			t.Fatalf("failed to seed item type %d: %v", it.typeID, err)
		}
	}

	schematic, err := colony.NewSchematic(SchematicBasic, TypeRefined, 5, 30*time.Minute,
		map[int64]int64{TypeRawOre: 3000, TypeRawGas: 10})
	if err != nil {
		t.Fatalf("failed to build schematic fixture: %v", err)
	}
	if err := repo.SaveSchematic(ctx, schematic); err != nil {
		t.Fatalf("failed to seed schematic: %v", err)
	}
}

// SampleSnapshot builds an extractor -> factory -> storage colony layout
// around the seeded static data. Checkpoint and install times start at the
// given instant.
func SampleSnapshot(colonyID int64, start time.Time) *simulation.ColonySnapshot {
	return &simulation.ColonySnapshot{
		ColonyID:       colonyID,
		Name:           "Test Colony",
		CheckpointTime: start,
		Facilities: []simulation.FacilitySnapshot{
			{
				PinID:            1,
				Kind:             "extractor",
				IsActive:         true,
				ProductTypeID:    TypeRawOre,
				BaseValue:        5000,
				CycleTimeSeconds: 1800,
				InstallTime:      start,
				ExpiryTime:       start.Add(24 * time.Hour),
			},
			{
				PinID:       2,
				Kind:        "factory",
				SchematicID: SchematicBasic,
				Contents:    map[int64]int64{TypeRawGas: 10},
			},
			{
				PinID: 3,
				Kind:  "storage",
			},
		},
		Routes: []simulation.RouteSnapshot{
			{RouteID: 11, SourceID: 1, DestinationID: 2, TypeID: TypeRawOre},
			{RouteID: 12, SourceID: 2, DestinationID: 3, TypeID: TypeRefined},
		},
	}
}

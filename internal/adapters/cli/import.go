package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/andrescamacho/colonysim-go/internal/adapters/persistence"
	"github.com/andrescamacho/colonysim-go/internal/application/simulation"
	"github.com/andrescamacho/colonysim-go/internal/domain/colony"
	"github.com/andrescamacho/colonysim-go/internal/infrastructure/database"
)

// NewImportCommand creates the import command
func NewImportCommand() *cobra.Command {
	var staticFile string

	cmd := &cobra.Command{
		Use:   "import <snapshot.json>",
		Short: "Import a colony snapshot as a stored checkpoint",
		Long: `Import a colony layout snapshot from a JSON file.

The snapshot holds facility ids, kinds, contents, and routes. Item volumes
and schematic definitions are resolved from the static database, so import
those first with --static if the database is empty.

Examples:
  colonysim import colony.json
  colonysim import colony.json --static sde.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, _, err := openService()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if staticFile != "" {
				if err := importStaticData(cmd, db, staticFile); err != nil {
					return err
				}
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read snapshot file: %w", err)
			}
			var snap simulation.ColonySnapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				return fmt.Errorf("failed to parse snapshot file: %w", err)
			}

			if err := svc.Import(cmd.Context(), &snap); err != nil {
				return err
			}
			fmt.Printf("✓ Imported colony %d (%s): %d facilities, %d routes, checkpoint %s\n",
				snap.ColonyID, snap.Name, len(snap.Facilities), len(snap.Routes),
				snap.CheckpointTime.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}

	cmd.Flags().StringVar(&staticFile, "static", "",
		"JSON file with item types and schematics to load before the snapshot")
	return cmd
}

// staticDataFile is the on-disk form of the static game data
type staticDataFile struct {
	ItemTypes []struct {
		TypeID int64   `json:"typeId"`
		Name   string  `json:"name"`
		Volume float64 `json:"volume"`
	} `json:"itemTypes"`
	Schematics []struct {
		ID               int64           `json:"id"`
		OutputTypeID     int64           `json:"outputTypeId"`
		OutputQuantity   int64           `json:"outputQuantity"`
		CycleTimeSeconds int64           `json:"cycleTimeSeconds"`
		Inputs           map[int64]int64 `json:"inputs"`
	} `json:"schematics"`
}

// importStaticData loads item types and schematics into the static tables
func importStaticData(cmd *cobra.Command, db *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read static data file: %w", err)
	}
	var file staticDataFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse static data file: %w", err)
	}

	repo := persistence.NewGormStaticDataRepository(db)
	for _, it := range file.ItemTypes {
		if err := repo.SaveItemType(cmd.Context(), it.TypeID, it.Name, it.Volume); err != nil {
			return err
		}
	}
	for _, sm := range file.Schematics {
		s, err := colony.NewSchematic(sm.ID, sm.OutputTypeID, sm.OutputQuantity,
			time.Duration(sm.CycleTimeSeconds)*time.Second, sm.Inputs)
		if err != nil {
			return fmt.Errorf("schematic %d: %w", sm.ID, err)
		}
		if err := repo.SaveSchematic(cmd.Context(), s); err != nil {
			return err
		}
	}
	fmt.Printf("✓ Loaded %d item types, %d schematics\n", len(file.ItemTypes), len(file.Schematics))
	return nil
}

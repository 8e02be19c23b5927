package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/colonysim-go/internal/application/simulation"
	"github.com/andrescamacho/colonysim-go/internal/domain/colony"
)

// GormStaticDataRepository implements simulation.StaticData using GORM
type GormStaticDataRepository struct {
	db *gorm.DB
}

// NewGormStaticDataRepository creates a new GORM static-data repository
func NewGormStaticDataRepository(db *gorm.DB) *GormStaticDataRepository {
	return &GormStaticDataRepository{db: db}
}

// VolumeOf returns the per-unit volume of an item type in cubic meters
func (r *GormStaticDataRepository) VolumeOf(ctx context.Context, typeID int64) (float64, error) {
	var model ItemTypeModel
	result := r.db.WithContext(ctx).Where("type_id = ?", typeID).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return 0, fmt.Errorf("%w: type %d", simulation.ErrTypeNotFound, typeID)
		}
		return 0, fmt.Errorf("failed to find item type: %w", result.Error)
	}
	return model.Volume, nil
}

// SchematicOf returns the schematic definition by id
func (r *GormStaticDataRepository) SchematicOf(ctx context.Context, schematicID int64) (*colony.Schematic, error) {
	var model SchematicModel
	result := r.db.WithContext(ctx).Where("id = ?", schematicID).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: schematic %d", simulation.ErrSchematicNotFound, schematicID)
		}
		return nil, fmt.Errorf("failed to find schematic: %w", result.Error)
	}
	return r.modelToSchematic(&model)
}

// SaveItemType upserts one item type row, used by the static-data importer
func (r *GormStaticDataRepository) SaveItemType(ctx context.Context, typeID int64, name string, volume float64) error {
	model := ItemTypeModel{TypeID: typeID, Name: name, Volume: volume}
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save item type %d: %w", typeID, err)
	}
	return nil
}

// SaveSchematic upserts one schematic row, used by the static-data importer
func (r *GormStaticDataRepository) SaveSchematic(ctx context.Context, s *colony.Schematic) error {
	inputsJSON, err := json.Marshal(s.Inputs)
	if err != nil {
		return fmt.Errorf("failed to marshal schematic inputs: %w", err)
	}
	model := SchematicModel{
		ID:               s.ID,
		OutputTypeID:     s.OutputTypeID,
		OutputQuantity:   s.OutputQuantity,
		CycleTimeSeconds: int64(s.CycleTime / time.Second),
		InputsJSON:       string(inputsJSON),
	}
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save schematic %d: %w", s.ID, err)
	}
	return nil
}

// modelToSchematic converts a database row to the domain schematic
func (r *GormStaticDataRepository) modelToSchematic(model *SchematicModel) (*colony.Schematic, error) {
	inputs := make(map[int64]int64)
	if model.InputsJSON != "" {
		if err := json.Unmarshal([]byte(model.InputsJSON), &inputs); err != nil {
			return nil, fmt.Errorf("invalid inputs JSON for schematic %d: %w", model.ID, err)
		}
	}
	return colony.NewSchematic(
		model.ID,
		model.OutputTypeID,
		model.OutputQuantity,
		time.Duration(model.CycleTimeSeconds)*time.Second,
		inputs,
	)
}

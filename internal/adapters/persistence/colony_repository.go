package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/colonysim-go/internal/application/simulation"
)

// GormColonyRepository implements simulation.ColonyRepository using GORM
type GormColonyRepository struct {
	db *gorm.DB
}

// NewGormColonyRepository creates a new GORM colony repository
func NewGormColonyRepository(db *gorm.DB) *GormColonyRepository {
	return &GormColonyRepository{db: db}
}

// Save stores a snapshot as the colony's checkpoint, replacing any previous
// facilities and routes in one transaction
func (r *GormColonyRepository) Save(ctx context.Context, snap *simulation.ColonySnapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := ColonyModel{
			ColonyID:       snap.ColonyID,
			Name:           snap.Name,
			CheckpointTime: snap.CheckpointTime.UTC(),
		}
		if err := tx.Save(&model).Error; err != nil {
			return fmt.Errorf("failed to save colony %d: %w", snap.ColonyID, err)
		}

		if err := tx.Where("colony_id = ?", snap.ColonyID).Delete(&FacilityModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear facilities: %w", err)
		}
		if err := tx.Where("colony_id = ?", snap.ColonyID).Delete(&RouteModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear routes: %w", err)
		}

		for i := range snap.Facilities {
			fm, err := facilityToModel(snap.ColonyID, &snap.Facilities[i])
			if err != nil {
				return err
			}
			if err := tx.Create(fm).Error; err != nil {
				return fmt.Errorf("failed to save facility %d: %w", snap.Facilities[i].PinID, err)
			}
		}
		for _, rs := range snap.Routes {
			rm := RouteModel{
				ColonyID:      snap.ColonyID,
				RouteID:       rs.RouteID,
				SourceID:      rs.SourceID,
				DestinationID: rs.DestinationID,
				TypeID:        rs.TypeID,
				Quantity:      rs.Quantity,
			}
			if err := tx.Create(&rm).Error; err != nil {
				return fmt.Errorf("failed to save route %d -> %d: %w", rs.SourceID, rs.DestinationID, err)
			}
		}
		return nil
	})
}

// FindByID retrieves the stored snapshot of a colony
func (r *GormColonyRepository) FindByID(ctx context.Context, colonyID int64) (*simulation.ColonySnapshot, error) {
	var model ColonyModel
	result := r.db.WithContext(ctx).Where("colony_id = ?", colonyID).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: colony %d", simulation.ErrColonyNotFound, colonyID)
		}
		return nil, fmt.Errorf("failed to find colony: %w", result.Error)
	}

	var facilityModels []FacilityModel
	if err := r.db.WithContext(ctx).Where("colony_id = ?", colonyID).Order("pin_id").Find(&facilityModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load facilities: %w", err)
	}
	var routeModels []RouteModel
	if err := r.db.WithContext(ctx).Where("colony_id = ?", colonyID).Order("id").Find(&routeModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}

	snap := &simulation.ColonySnapshot{
		ColonyID:       model.ColonyID,
		Name:           model.Name,
		CheckpointTime: model.CheckpointTime.UTC(),
	}
	for i := range facilityModels {
		fs, err := modelToFacility(&facilityModels[i])
		if err != nil {
			return nil, err
		}
		snap.Facilities = append(snap.Facilities, *fs)
	}
	for _, rm := range routeModels {
		snap.Routes = append(snap.Routes, simulation.RouteSnapshot{
			RouteID:       rm.RouteID,
			SourceID:      rm.SourceID,
			DestinationID: rm.DestinationID,
			TypeID:        rm.TypeID,
			Quantity:      rm.Quantity,
		})
	}
	return snap, nil
}

// List returns the header of every stored colony
func (r *GormColonyRepository) List(ctx context.Context) ([]simulation.ColonyHeader, error) {
	var models []ColonyModel
	if err := r.db.WithContext(ctx).Order("colony_id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list colonies: %w", err)
	}

	headers := make([]simulation.ColonyHeader, 0, len(models))
	for _, model := range models {
		var count int64
		if err := r.db.WithContext(ctx).Model(&FacilityModel{}).
			Where("colony_id = ?", model.ColonyID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count facilities: %w", err)
		}
		headers = append(headers, simulation.ColonyHeader{
			ColonyID:       model.ColonyID,
			Name:           model.Name,
			CheckpointTime: model.CheckpointTime.UTC(),
			Facilities:     int(count),
		})
	}
	return headers, nil
}

// facilityToModel converts a facility snapshot to its database row
func facilityToModel(colonyID int64, fs *simulation.FacilitySnapshot) (*FacilityModel, error) {
	contentsJSON := "{}"
	if len(fs.Contents) > 0 {
		bytes, err := json.Marshal(fs.Contents)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal contents of facility %d: %w", fs.PinID, err)
		}
		contentsJSON = string(bytes)
	}
	return &FacilityModel{
		ColonyID:                colonyID,
		PinID:                   fs.PinID,
		Kind:                    fs.Kind,
		TypeID:                  fs.TypeID,
		IsActive:                fs.IsActive,
		LastRunTime:             timePtr(fs.LastRunTime),
		Contents:                contentsJSON,
		ProductTypeID:           fs.ProductTypeID,
		BaseValue:               fs.BaseValue,
		CycleTimeSeconds:        fs.CycleTimeSeconds,
		InstallTime:             timePtr(fs.InstallTime),
		ExpiryTime:              timePtr(fs.ExpiryTime),
		SchematicID:             fs.SchematicID,
		LastCycleStartTime:      timePtr(fs.LastCycleStartTime),
		HasReceivedInputs:       fs.HasReceivedInputs,
		ReceivedInputsLastCycle: fs.ReceivedInputsLastCycle,
	}, nil
}

// modelToFacility converts a database row back to a facility snapshot
func modelToFacility(fm *FacilityModel) (*simulation.FacilitySnapshot, error) {
	var contents map[int64]int64
	if fm.Contents != "" && fm.Contents != "{}" {
		if err := json.Unmarshal([]byte(fm.Contents), &contents); err != nil {
			return nil, fmt.Errorf("invalid contents JSON for facility %d: %w", fm.PinID, err)
		}
	}
	return &simulation.FacilitySnapshot{
		PinID:                   fm.PinID,
		Kind:                    fm.Kind,
		TypeID:                  fm.TypeID,
		IsActive:                fm.IsActive,
		LastRunTime:             timeVal(fm.LastRunTime),
		Contents:                contents,
		ProductTypeID:           fm.ProductTypeID,
		BaseValue:               fm.BaseValue,
		CycleTimeSeconds:        fm.CycleTimeSeconds,
		InstallTime:             timeVal(fm.InstallTime),
		ExpiryTime:              timeVal(fm.ExpiryTime),
		SchematicID:             fm.SchematicID,
		LastCycleStartTime:      timeVal(fm.LastCycleStartTime),
		HasReceivedInputs:       fm.HasReceivedInputs,
		ReceivedInputsLastCycle: fm.ReceivedInputsLastCycle,
	}, nil
}

// timePtr maps the zero time to NULL
func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

// timeVal maps NULL back to the zero time
func timeVal(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}

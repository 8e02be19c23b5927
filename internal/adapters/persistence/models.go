package persistence

import (
	"time"
)

// ItemTypeModel represents the item_types table (static game data)
type ItemTypeModel struct {
	TypeID int64   `gorm:"column:type_id;primaryKey"`
	Name   string  `gorm:"column:name;not null"`
	Volume float64 `gorm:"column:volume;not null"`
}

func (ItemTypeModel) TableName() string {
	return "item_types"
}

// SchematicModel represents the schematics table (static game data)
type SchematicModel struct {
	ID               int64  `gorm:"column:id;primaryKey"`
	OutputTypeID     int64  `gorm:"column:output_type_id;not null"`
	OutputQuantity   int64  `gorm:"column:output_quantity;not null"`
	CycleTimeSeconds int64  `gorm:"column:cycle_time_seconds;not null"`
	InputsJSON       string `gorm:"column:inputs;type:text;not null"` // {typeID: quantity} as JSON
}

func (SchematicModel) TableName() string {
	return "schematics"
}

// ColonyModel represents the colonies table
type ColonyModel struct {
	ColonyID       int64     `gorm:"column:colony_id;primaryKey"`
	Name           string    `gorm:"column:name"`
	CheckpointTime time.Time `gorm:"column:checkpoint_time;not null"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (ColonyModel) TableName() string {
	return "colonies"
}

// FacilityModel represents the facilities table. Kind-specific columns stay
// NULL for kinds that do not use them.
type FacilityModel struct {
	ColonyID    int64        `gorm:"column:colony_id;primaryKey;not null"`
	Colony      *ColonyModel `gorm:"foreignKey:ColonyID;references:ColonyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PinID       int64        `gorm:"column:pin_id;primaryKey;not null"`
	Kind        string       `gorm:"column:kind;not null"`
	TypeID      int64        `gorm:"column:type_id"`
	IsActive    bool         `gorm:"column:is_active;not null;default:false"`
	LastRunTime *time.Time   `gorm:"column:last_run_time"`
	Contents    string       `gorm:"column:contents;type:text"` // {typeID: quantity} as JSON

	// Extractor columns
	ProductTypeID    int64      `gorm:"column:product_type_id"`
	BaseValue        int64      `gorm:"column:base_value"`
	CycleTimeSeconds int64      `gorm:"column:cycle_time_seconds"`
	InstallTime      *time.Time `gorm:"column:install_time"`
	ExpiryTime       *time.Time `gorm:"column:expiry_time"`

	// Factory columns
	SchematicID             int64      `gorm:"column:schematic_id"`
	LastCycleStartTime      *time.Time `gorm:"column:last_cycle_start_time"`
	HasReceivedInputs       bool       `gorm:"column:has_received_inputs;not null;default:false"`
	ReceivedInputsLastCycle bool       `gorm:"column:received_inputs_last_cycle;not null;default:false"`
}

func (FacilityModel) TableName() string {
	return "facilities"
}

// RouteModel represents the routes table
type RouteModel struct {
	ID            int64        `gorm:"column:id;primaryKey;autoIncrement"`
	ColonyID      int64        `gorm:"column:colony_id;index;not null"`
	Colony        *ColonyModel `gorm:"foreignKey:ColonyID;references:ColonyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	RouteID       int64        `gorm:"column:route_id"`
	SourceID      int64        `gorm:"column:source_id;not null"`
	DestinationID int64        `gorm:"column:destination_id;not null"`
	TypeID        int64        `gorm:"column:type_id;not null"`
	Quantity      int64        `gorm:"column:quantity;not null;default:0"`
}

func (RouteModel) TableName() string {
	return "routes"
}

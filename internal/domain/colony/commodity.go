package colony

import "fmt"

// Commodity represents a planetary commodity type. Identity is the type id
// alone; the per-unit volume is immutable metadata resolved once from the
// static-data lookup.
type Commodity struct {
	TypeID int64
	Name   string
	Volume float64 // m3 per unit
}

// NewCommodity creates a commodity type with validation
func NewCommodity(typeID int64, name string, volume float64) (*Commodity, error) {
	if typeID <= 0 {
		return nil, fmt.Errorf("commodity type id must be positive")
	}
	if volume < 0 {
		return nil, fmt.Errorf("commodity volume cannot be negative")
	}
	return &Commodity{TypeID: typeID, Name: name, Volume: volume}, nil
}

// Catalog maps commodity type ids to their per-unit volumes. A type absent
// from the catalog has unknown volume; storage admission treats it as
// unacceptable rather than free.
type Catalog map[int64]float64

// VolumeOf returns the per-unit volume for a type, or 0 if unknown
func (c Catalog) VolumeOf(typeID int64) float64 {
	return c[typeID]
}

// Clone returns an independent copy of the catalog
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for id, vol := range c {
		out[id] = vol
	}
	return out
}

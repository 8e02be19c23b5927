package colony

import "fmt"

// Route is a directed commodity path between two facilities. Quantity is a
// per-attempt transfer cap, not a cumulative budget; zero means uncapped.
type Route struct {
	ID            int64
	SourceID      int64
	DestinationID int64
	TypeID        int64
	Quantity      int64
}

// NewRoute creates a route with validation
func NewRoute(id, sourceID, destinationID, typeID, quantity int64) (*Route, error) {
	if sourceID == destinationID {
		return nil, fmt.Errorf("route source and destination cannot be the same facility")
	}
	if typeID <= 0 {
		return nil, fmt.Errorf("route commodity type id must be positive")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("route quantity cap cannot be negative")
	}
	return &Route{
		ID:            id,
		SourceID:      sourceID,
		DestinationID: destinationID,
		TypeID:        typeID,
		Quantity:      quantity,
	}, nil
}

// Cap returns the per-attempt transfer limit, treating an unset quantity as
// unbounded
func (r Route) Cap() int64 {
	if r.Quantity <= 0 {
		return int64(1<<62 - 1)
	}
	return r.Quantity
}

func (r Route) String() string {
	return fmt.Sprintf("Route[%d: %d -> %d, type %d, cap %d]",
		r.ID, r.SourceID, r.DestinationID, r.TypeID, r.Quantity)
}

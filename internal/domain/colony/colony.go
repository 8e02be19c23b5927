package colony

import (
	"fmt"
	"time"
)

// Colony is the aggregate root for one planet's production chain: the
// ordered facility list, the route graph, the commodity catalog, and the
// simulation clock. A Colony is owned by exactly one Simulate call at a
// time; callers keep their own pre-image.
type Colony struct {
	ID             int64
	Name           string
	Catalog        Catalog
	Routes         []Route
	CheckpointTime time.Time
	CurrentSimTime time.Time

	facilities []*Facility
	byID       map[int64]*Facility
}

// NewColony creates an empty colony positioned at the checkpoint time
func NewColony(id int64, name string, checkpoint time.Time) *Colony {
	return &Colony{
		ID:             id,
		Name:           name,
		Catalog:        make(Catalog),
		CheckpointTime: checkpoint,
		CurrentSimTime: checkpoint,
		byID:           make(map[int64]*Facility),
	}
}

// AddFacility appends a facility, rejecting duplicate ids
func (c *Colony) AddFacility(f *Facility) error {
	if f == nil {
		return fmt.Errorf("facility cannot be nil")
	}
	if _, exists := c.byID[f.ID]; exists {
		return fmt.Errorf("%w: facility %d", ErrDuplicateFacility, f.ID)
	}
	c.facilities = append(c.facilities, f)
	c.byID[f.ID] = f
	return nil
}

// AddRoute appends a route. Dangling endpoints are tolerated here and
// skipped at transfer time.
func (c *Colony) AddRoute(r Route) {
	c.Routes = append(c.Routes, r)
}

// Facility returns the facility with the given id, or nil
func (c *Colony) Facility(id int64) *Facility {
	return c.byID[id]
}

// Facilities returns the ordered facility list. The slice is shared; treat
// it as read-only.
func (c *Colony) Facilities() []*Facility {
	return c.facilities
}

// RoutesFrom returns the outgoing routes of a facility in stored order
func (c *Colony) RoutesFrom(sourceID int64) []Route {
	var out []Route
	for _, r := range c.Routes {
		if r.SourceID == sourceID {
			out = append(out, r)
		}
	}
	return out
}

// RoutesTo returns the incoming routes of a facility in stored order
func (c *Colony) RoutesTo(destinationID int64) []Route {
	var out []Route
	for _, r := range c.Routes {
		if r.DestinationID == destinationID {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a deep copy sharing nothing mutable with the receiver
func (c *Colony) Clone() *Colony {
	out := &Colony{
		ID:             c.ID,
		Name:           c.Name,
		Catalog:        c.Catalog.Clone(),
		Routes:         append([]Route(nil), c.Routes...),
		CheckpointTime: c.CheckpointTime,
		CurrentSimTime: c.CurrentSimTime,
		byID:           make(map[int64]*Facility, len(c.facilities)),
	}
	out.facilities = make([]*Facility, 0, len(c.facilities))
	for _, f := range c.facilities {
		cp := f.Clone()
		out.facilities = append(out.facilities, cp)
		out.byID[cp.ID] = cp
	}
	return out
}

// Summary is the colony-level aggregate view recomputed after a simulation
type Summary struct {
	CountsByKind map[Kind]int
	Working      bool
	StorageFull  bool
}

// RefreshStatuses recomputes every facility's display status from its final
// state and returns the colony aggregates.
func (c *Colony) RefreshStatuses(now time.Time) Summary {
	summary := Summary{CountsByKind: make(map[Kind]int)}
	for _, f := range c.facilities {
		summary.CountsByKind[f.Kind]++
		switch f.Kind {
		case KindExtractor:
			switch {
			case f.ProductTypeID == 0:
				f.Status = StatusInert
			case !now.Before(f.ExpiryTime) || !f.IsActive:
				f.Status = StatusExpired
			default:
				f.Status = StatusExtracting
				summary.Working = true
			}
		case KindFactory:
			switch {
			case f.Schematic == nil:
				f.Status = StatusInert
			case !f.LastCycleStartTime.IsZero():
				f.Status = StatusProducing
				summary.Working = true
			case f.HasReceivedInputs || f.hasBufferedInputs():
				f.Status = StatusAccumulating
			default:
				f.Status = StatusIdle
			}
		case KindStorage, KindLaunchpad, KindCommandCenter:
			if f.FreeVolume() <= 0 {
				f.Status = StatusStorageFull
				summary.StorageFull = true
			} else {
				f.Status = StatusStorageOpen
			}
		default:
			f.Status = StatusUnknown
		}
	}
	return summary
}

func (c *Colony) String() string {
	return fmt.Sprintf("Colony[%d %q, %d facilities, %d routes, sim time %s]",
		c.ID, c.Name, len(c.facilities), len(c.Routes), c.CurrentSimTime.Format(time.RFC3339))
}

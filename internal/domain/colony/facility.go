package colony

import (
	"fmt"
	"math"
	"time"
)

// Kind identifies the facility variant. All kind-dependent behavior
// (capacity, can-run, next-run-time, admission policy) lives behind
// exhaustive switches in this package so a new kind cannot be half-wired.
type Kind int

const (
	KindExtractor Kind = iota + 1
	KindFactory
	KindStorage
	KindLaunchpad
	KindCommandCenter
)

func (k Kind) String() string {
	switch k {
	case KindExtractor:
		return "extractor"
	case KindFactory:
		return "factory"
	case KindStorage:
		return "storage"
	case KindLaunchpad:
		return "launchpad"
	case KindCommandCenter:
		return "command-center"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Capacity returns the fixed volume capacity in m3 for the kind. Producers
// buffer their own output without a volume cap; their intake is bounded by
// admission policy instead.
func (k Kind) Capacity() float64 {
	switch k {
	case KindStorage:
		return 12000
	case KindLaunchpad:
		return 10000
	case KindCommandCenter:
		return 500
	case KindExtractor, KindFactory:
		return math.Inf(1)
	default:
		return 0
	}
}

// IsStorage reports whether the kind holds commodities on behalf of the
// colony. Storage kinds are always active and are never scheduled to run.
func (k Kind) IsStorage() bool {
	switch k {
	case KindStorage, KindLaunchpad, KindCommandCenter:
		return true
	case KindExtractor, KindFactory:
		return false
	default:
		return false
	}
}

// Status is the derived display state of a facility
type Status int

const (
	StatusUnknown Status = iota
	StatusInert          // factory with no schematic, or extractor with no product
	StatusIdle
	StatusAccumulating
	StatusProducing
	StatusExtracting
	StatusExpired
	StatusStorageOpen
	StatusStorageFull
)

func (s Status) String() string {
	switch s {
	case StatusInert:
		return "inert"
	case StatusIdle:
		return "idle"
	case StatusAccumulating:
		return "accumulating"
	case StatusProducing:
		return "producing"
	case StatusExtracting:
		return "extracting"
	case StatusExpired:
		return "expired"
	case StatusStorageOpen:
		return "storage open"
	case StatusStorageFull:
		return "storage full"
	default:
		return "unknown"
	}
}

// Facility is a single pin in the colony: identity plus the mutable
// production state bag. Kind-specific fields are only meaningful for their
// kind; everything else ignores them.
type Facility struct {
	ID     int64
	Kind   Kind
	TypeID int64 // pin type id, display metadata

	Contents     map[int64]int64
	CapacityUsed float64
	IsActive     bool
	LastRunTime  time.Time // zero = never ran
	Status       Status

	// Extractor fields
	ProductTypeID int64
	BaseValue     int64
	CycleTime     time.Duration
	InstallTime   time.Time
	ExpiryTime    time.Time

	// Factory fields
	Schematic               *Schematic
	LastCycleStartTime      time.Time // set while mid-cycle
	HasReceivedInputs       bool
	ReceivedInputsLastCycle bool
}

// NewFacility creates a facility of the given kind with an empty state bag
func NewFacility(id int64, kind Kind, typeID int64) *Facility {
	return &Facility{
		ID:       id,
		Kind:     kind,
		TypeID:   typeID,
		Contents: make(map[int64]int64),
		IsActive: kind.IsStorage(),
	}
}

// Clone returns a deep copy of the facility
func (f *Facility) Clone() *Facility {
	out := *f
	out.Contents = make(map[int64]int64, len(f.Contents))
	for typeID, qty := range f.Contents {
		out.Contents[typeID] = qty
	}
	out.Schematic = f.Schematic.Clone()
	return &out
}

// Quantity returns the buffered amount of a commodity type
func (f *Facility) Quantity(typeID int64) int64 {
	return f.Contents[typeID]
}

// RecomputeCapacity rebuilds capacityUsed from the contents map. It is
// recomputed rather than incrementally trusted so repeated transfers cannot
// accumulate float drift.
func (f *Facility) RecomputeCapacity(cat Catalog) {
	used := 0.0
	for typeID, qty := range f.Contents {
		used += float64(qty) * cat.VolumeOf(typeID)
	}
	f.CapacityUsed = used
}

// FreeVolume returns the remaining volume in m3
func (f *Facility) FreeVolume() float64 {
	free := f.Kind.Capacity() - f.CapacityUsed
	if free < 0 {
		return 0
	}
	return free
}

// AcceptLimit returns how many units of a type the facility would admit in
// one transfer. Factories admit only schematic inputs and only up to the
// next cycle's outstanding requirement; storage kinds admit whole units up
// to remaining volume; extractors admit nothing.
func (f *Facility) AcceptLimit(typeID int64, cat Catalog) int64 {
	switch f.Kind {
	case KindFactory:
		if f.Schematic == nil || !f.Schematic.Accepts(typeID) {
			return 0
		}
		need := f.Schematic.RequiredInput(typeID) - f.Contents[typeID]
		if need < 0 {
			return 0
		}
		return need
	case KindStorage, KindLaunchpad, KindCommandCenter:
		vol := cat.VolumeOf(typeID)
		if vol <= 0 {
			return 0
		}
		return int64(math.Floor(f.FreeVolume() / vol))
	case KindExtractor:
		return 0
	default:
		return 0
	}
}

// Receive admits up to the accept limit of a type and returns the quantity
// actually taken. Capacity is recomputed after the mutation; a factory that
// takes anything records the edge-triggered received-inputs flag.
func (f *Facility) Receive(typeID, qty int64, cat Catalog) int64 {
	if qty <= 0 {
		return 0
	}
	limit := f.AcceptLimit(typeID, cat)
	if qty > limit {
		qty = limit
	}
	if qty <= 0 {
		return 0
	}
	f.Contents[typeID] += qty
	f.RecomputeCapacity(cat)
	if f.Kind == KindFactory {
		f.HasReceivedInputs = true
	}
	return qty
}

// Remove takes up to qty units of a type out of the contents, clamped to
// what is actually stored, and returns the quantity removed
func (f *Facility) Remove(typeID, qty int64, cat Catalog) int64 {
	if qty <= 0 {
		return 0
	}
	have := f.Contents[typeID]
	if qty > have {
		qty = have
	}
	if qty <= 0 {
		return 0
	}
	if have == qty {
		delete(f.Contents, typeID)
	} else {
		f.Contents[typeID] = have - qty
	}
	f.RecomputeCapacity(cat)
	return qty
}

// deposit adds self-produced units without admission checks (production
// lands in the producer's own buffer before routing)
func (f *Facility) deposit(typeID, qty int64, cat Catalog) {
	if qty <= 0 {
		return
	}
	f.Contents[typeID] += qty
	f.RecomputeCapacity(cat)
}

// CanRun reports whether the facility could be scheduled at the given time
func (f *Facility) CanRun(now time.Time) bool {
	switch f.Kind {
	case KindExtractor:
		return f.ProductTypeID != 0 && f.IsActive && now.Before(f.ExpiryTime)
	case KindFactory:
		if f.Schematic == nil {
			return false
		}
		return !f.LastCycleStartTime.IsZero() ||
			f.hasAllInputs() ||
			f.HasReceivedInputs ||
			f.ReceivedInputsLastCycle
	case KindStorage, KindLaunchpad, KindCommandCenter:
		return false
	default:
		return false
	}
}

// NextRunTime computes when the facility should next be scheduled. ok is
// false for facilities that will never run on their own (storage kinds,
// inert factories, expired extractors, factories waiting on a first
// delivery).
func (f *Facility) NextRunTime(now time.Time) (time.Time, bool) {
	switch f.Kind {
	case KindExtractor:
		if f.ProductTypeID == 0 || !f.IsActive {
			return time.Time{}, false
		}
		base := f.LastRunTime
		if base.IsZero() {
			base = f.InstallTime
		}
		next := base.Add(f.CycleTime)
		if !next.Before(f.ExpiryTime) {
			return time.Time{}, false
		}
		return next, true
	case KindFactory:
		if f.Schematic == nil {
			return time.Time{}, false
		}
		if !f.LastCycleStartTime.IsZero() {
			return f.LastCycleStartTime.Add(f.Schematic.CycleTime), true
		}
		if f.hasAllInputs() {
			return now, true
		}
		if f.HasReceivedInputs || f.ReceivedInputsLastCycle {
			if f.LastRunTime.IsZero() {
				return now, true
			}
			return f.LastRunTime.Add(f.Schematic.CycleTime), true
		}
		return time.Time{}, false
	case KindStorage, KindLaunchpad, KindCommandCenter:
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// hasBufferedInputs reports whether any schematic input is partially buffered
func (f *Facility) hasBufferedInputs() bool {
	if f.Schematic == nil {
		return false
	}
	for typeID := range f.Schematic.Inputs {
		if f.Contents[typeID] > 0 {
			return true
		}
	}
	return false
}

// hasAllInputs reports whether every schematic input is buffered at or above
// its per-cycle requirement. Surplus of one input never substitutes for a
// deficit in another.
func (f *Facility) hasAllInputs() bool {
	if f.Schematic == nil {
		return false
	}
	for typeID, required := range f.Schematic.Inputs {
		if f.Contents[typeID] < required {
			return false
		}
	}
	return true
}

func (f *Facility) String() string {
	return fmt.Sprintf("Facility[%d %s, %d types buffered, %s]",
		f.ID, f.Kind, len(f.Contents), f.Status)
}

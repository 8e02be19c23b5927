package colony

import (
	"time"

	"github.com/andrescamacho/colonysim-go/internal/domain/shared"
)

// Simulator advances colonies through simulated time. It carries no per-run
// state: the schedule and the colony under simulation are local to each
// call, so concurrent simulations of different colonies cannot interleave.
type Simulator struct {
	clock shared.Clock
}

// NewSimulator creates a simulator using the given wall clock for
// "simulate to now" calls
func NewSimulator(clock shared.Clock) *Simulator {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Simulator{clock: clock}
}

// Run advances a deep clone of the colony to the target time and returns it
// with refreshed statuses. The caller's colony is never mutated. A target at
// or before the colony's current simulation time short-circuits with an
// equivalent colony and zero events processed. The returned clock position
// is clamped to the target, never past it.
func (s *Simulator) Run(col *Colony, target time.Time) *Colony {
	out := col.Clone()
	if !target.After(out.CurrentSimTime) {
		out.RefreshStatuses(out.CurrentSimTime)
		return out
	}
	s.drain(out, target, false)
	if out.CurrentSimTime.Before(target) {
		out.CurrentSimTime = target
	}
	out.RefreshStatuses(out.CurrentSimTime)
	return out
}

// RunToNow advances the colony to the simulator's wall-clock now
func (s *Simulator) RunToNow(col *Colony) *Colony {
	return s.Run(col, s.clock.Now())
}

// RunUntilIdle advances the colony until nothing can act anymore: the event
// queue drains (extractors expired, factories starved) or production stalls
// against full storage, which is terminal rather than time-bound. The
// returned clock position is the time activity stopped.
func (s *Simulator) RunUntilIdle(col *Colony) *Colony {
	out := col.Clone()
	s.drain(out, time.Time{}, true)
	out.RefreshStatuses(out.CurrentSimTime)
	return out
}

// drain initializes a call-local schedule from facility state and processes
// events in (time, facility id) order until the queue empties, the target is
// passed, or (until-idle mode) a full storage destination blocks progress.
func (s *Simulator) drain(col *Colony, target time.Time, untilIdle bool) {
	queue := NewSchedule()
	for _, f := range col.Facilities() {
		if !f.CanRun(col.CurrentSimTime) {
			continue
		}
		if at, ok := f.NextRunTime(col.CurrentSimTime); ok {
			queue.Add(at, f.ID)
		}
	}

	for {
		ev, ok := queue.Pop()
		if !ok {
			return
		}
		if !untilIdle && ev.At.After(target) {
			return
		}
		if ev.At.After(col.CurrentSimTime) {
			col.CurrentSimTime = ev.At
		}
		f := col.Facility(ev.FacilityID)
		if f == nil {
			continue
		}

		var produced map[int64]int64
		completed := false
		switch f.Kind {
		case KindExtractor:
			produced = runExtractor(f, ev.At, col.Catalog)
		case KindFactory:
			produced, completed = runFactory(f, ev.At, col.Catalog)
		default:
			continue
		}

		blocked := false
		if len(produced) > 0 {
			// Push the whole buffered amount of each produced type, not
			// just this run's output: leftovers stranded by a previously
			// full destination get another chance to move.
			for typeID := range produced {
				produced[typeID] = f.Quantity(typeID)
			}
			transfers, leftover := Distribute(col, f, produced)
			for _, tr := range transfers {
				dest := col.Facility(tr.DestinationID)
				if dest == nil || dest.Kind != KindFactory {
					continue
				}
				// A consumer that received something may now be able to run.
				if at, ok := dest.NextRunTime(ev.At); ok {
					queue.Add(at, dest.ID)
				}
			}
			if untilIdle && storageBlocked(col, f, leftover) {
				blocked = true
			}
		}

		if completed {
			// Opportunistically prime the next cycle from connected storage
			// before the factory is re-queued.
			PullInputs(col, f)
		}

		if at, ok := f.NextRunTime(ev.At); ok {
			queue.Add(at, f.ID)
		}
		if blocked {
			return
		}
	}
}

// storageBlocked reports whether leftover output could not land because
// every storage destination routed for it is full. A producer with no
// storage route at all simply buffers locally and is not considered blocked.
func storageBlocked(c *Colony, source *Facility, leftover map[int64]int64) bool {
	for typeID, qty := range leftover {
		if qty <= 0 {
			continue
		}
		_, stores := partitionTargets(c, source.ID, typeID)
		if len(stores) == 0 {
			continue
		}
		open := false
		for _, target := range stores {
			if target.dest.AcceptLimit(typeID, c.Catalog) > 0 {
				open = true
				break
			}
		}
		if !open {
			return true
		}
	}
	return false
}

// NextKeyTime returns the earliest future instant at which the colony's
// state could change: an active extractor's program expiry or any
// facility's computed next run. ok is false for a fully quiescent colony.
// Callers use this to step a simulation in discrete jumps without deriving
// scheduler internals.
func NextKeyTime(col *Colony) (time.Time, bool) {
	now := col.CurrentSimTime
	var best time.Time
	found := false
	consider := func(t time.Time) {
		if !found || t.Before(best) {
			best = t
			found = true
		}
	}
	for _, f := range col.Facilities() {
		if f.Kind == KindExtractor && f.IsActive && f.ProductTypeID != 0 && f.ExpiryTime.After(now) {
			consider(f.ExpiryTime)
		}
		if at, ok := f.NextRunTime(now); ok {
			consider(at)
		}
	}
	return best, found
}

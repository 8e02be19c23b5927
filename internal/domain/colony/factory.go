package colony

import "time"

// runFactory advances a factory's cycle state machine at a scheduled run
// time. It returns the quantities produced by a completing cycle (for
// routing) and whether a cycle completed on this run.
//
// A run does three things, in order:
//  1. If a cycle started at least cycleTime ago, complete it: debit every
//     input requirement, credit the output into the factory's own buffer,
//     and roll the received-inputs flag into the retry flag.
//  2. If no cycle is mid-flight and every input is buffered at requirement,
//     start a new cycle.
//  3. Record the run time. A run that neither completes nor starts a cycle
//     is a dry retry; it still counts for the next-run-time policy.
func runFactory(f *Facility, at time.Time, cat Catalog) (produced map[int64]int64, completed bool) {
	if f.Schematic == nil {
		return nil, false
	}

	if !f.LastCycleStartTime.IsZero() && at.Sub(f.LastCycleStartTime) >= f.Schematic.CycleTime {
		for typeID, required := range f.Schematic.Inputs {
			f.Remove(typeID, required, cat)
		}
		f.deposit(f.Schematic.OutputTypeID, f.Schematic.OutputQuantity, cat)
		f.LastCycleStartTime = time.Time{}
		f.IsActive = false
		f.ReceivedInputsLastCycle = f.HasReceivedInputs
		f.HasReceivedInputs = false
		completed = true
		produced = map[int64]int64{f.Schematic.OutputTypeID: f.Schematic.OutputQuantity}
	}

	if f.LastCycleStartTime.IsZero() {
		if f.hasAllInputs() {
			f.LastCycleStartTime = at
			f.IsActive = true
		} else if !completed {
			// Dry retry: the buffer is still short. Age the received-inputs
			// flags the same way completion does, so a starved factory gets
			// one boundary retry per delivery and then waits for the router
			// to wake it on the next arrival.
			f.ReceivedInputsLastCycle = f.HasReceivedInputs
			f.HasReceivedInputs = false
		}
	}

	f.LastRunTime = at
	return produced, completed
}

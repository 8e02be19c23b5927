package colony

import (
	"math"
	"time"
)

// Extraction program curve constants. The per-cycle yield follows a decaying
// base with a three-cosine noise term; downstream factory buffering depends
// on the exact integer rounding per cycle, so the arithmetic here must not
// be reordered.
const (
	yieldDecayFactor = 0.012
	yieldNoiseFactor = 0.8
	yieldFreqOne     = 1.0 / 12.0
	yieldFreqTwo     = 1.0 / 5.0
	yieldFreqThree   = 1.0 / 2.0
)

// ProgramYield returns the integer units produced by the cycle at the given
// zero-based index of an extraction program.
func ProgramYield(baseValue, cycleIndex int64, cycleTime time.Duration) int64 {
	if baseValue <= 0 || cycleIndex < 0 || cycleTime <= 0 {
		return 0
	}
	barWidth := cycleTime.Seconds() / 900.0
	t := (float64(cycleIndex) + 0.5) * barWidth

	decay := float64(baseValue) / (1 + t*yieldDecayFactor)
	phase := math.Pow(float64(baseValue), 0.7)

	sinA := math.Cos(phase + t*yieldFreqOne)
	sinB := math.Cos(phase/2 + t*yieldFreqTwo)
	sinC := math.Cos(t * yieldFreqThree)
	sins := math.Max((sinA+sinB+sinC)/3, 0)

	return int64(math.Round(barWidth * decay * (1 + yieldNoiseFactor*sins)))
}

// AccruedYield sums the yields of every program cycle completing in the
// window (from, to], clamped to the program lifetime [installTime,
// expiryTime). It returns 0 for any window in which the program was not
// running.
func AccruedYield(baseValue int64, cycleTime time.Duration, installTime, expiryTime, from, to time.Time) int64 {
	if baseValue <= 0 || cycleTime <= 0 {
		return 0
	}
	if !expiryTime.IsZero() && to.After(expiryTime) {
		to = expiryTime
	}
	if from.Before(installTime) {
		from = installTime
	}
	if !to.After(from) {
		return 0
	}

	// Cycle i completes at installTime + (i+1)*cycleTime.
	firstDone := int64(from.Sub(installTime) / cycleTime) // cycles already completed by `from`
	lastDone := int64(to.Sub(installTime) / cycleTime)

	total := int64(0)
	for i := firstDone; i < lastDone; i++ {
		total += ProgramYield(baseValue, i, cycleTime)
	}
	return total
}

// runExtractor advances an extractor at a scheduled run time, depositing the
// just-completed cycle's yield into the extractor's own buffer. Returns the
// produced quantities for routing, or nil when the run produced nothing.
func runExtractor(f *Facility, at time.Time, cat Catalog) map[int64]int64 {
	if f.ProductTypeID == 0 {
		return nil
	}
	if !at.Before(f.ExpiryTime) {
		// Program over. Keep whatever was last produced until collected.
		f.IsActive = false
		return nil
	}
	elapsed := at.Sub(f.InstallTime)
	if elapsed < f.CycleTime {
		return nil
	}
	cycleIndex := int64(elapsed/f.CycleTime) - 1
	qty := ProgramYield(f.BaseValue, cycleIndex, f.CycleTime)
	f.LastRunTime = at
	f.IsActive = true
	if qty <= 0 {
		return nil
	}
	f.deposit(f.ProductTypeID, qty, cat)
	return map[int64]int64{f.ProductTypeID: qty}
}

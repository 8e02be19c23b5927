package colony_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonysim-go/internal/domain/colony"
)

func TestSimulator_LoneExtractorAccumulatesTwoCycles(t *testing.T) {
	// Arrange - no route anywhere: output stays in the extractor's buffer
	checkpoint := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	col := newTestColony(t, checkpoint)
	addExtractor(t, col, 1, typeRawA, 100, time.Hour, checkpoint, checkpoint.Add(48*time.Hour))

	// Act
	out := newSimulator(checkpoint).Run(col, checkpoint.Add(2*time.Hour))

	// Assert - exactly two cycles' worth, exactly one content entry
	got := out.Facility(1)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, int64(646+399), got.Quantity(typeRawA))
	assert.Equal(t, checkpoint.Add(2*time.Hour), out.CurrentSimTime)
	assert.Equal(t, colony.StatusExtracting, got.Status)
}

func TestSimulator_TargetNotInFutureIsANoOp(t *testing.T) {
	checkpoint := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	col := newTestColony(t, checkpoint)
	addExtractor(t, col, 1, typeRawA, 100, time.Hour, checkpoint, checkpoint.Add(48*time.Hour))

	sim := newSimulator(checkpoint)
	same := sim.Run(col, checkpoint)
	past := sim.Run(col, checkpoint.Add(-time.Hour))

	for _, out := range []*colony.Colony{same, past} {
		assert.Equal(t, checkpoint, out.CurrentSimTime)
		assert.Empty(t, out.Facility(1).Contents)
	}
}

func TestSimulator_NeverMutatesCallerColony(t *testing.T) {
	checkpoint := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	col := newTestColony(t, checkpoint)
	addExtractor(t, col, 1, typeRawA, 100, time.Hour, checkpoint, checkpoint.Add(48*time.Hour))

	newSimulator(checkpoint).Run(col, checkpoint.Add(10*time.Hour))

	assert.Empty(t, col.Facility(1).Contents)
	assert.Equal(t, checkpoint, col.CurrentSimTime)
}

func TestSimulator_ClockClampedToTarget(t *testing.T) {
	checkpoint := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	col := newTestColony(t, checkpoint)
	addExtractor(t, col, 1, typeRawA, 100, time.Hour, checkpoint, checkpoint.Add(48*time.Hour))

	// Target falls between cycle events.
	out := newSimulator(checkpoint).Run(col, checkpoint.Add(90*time.Minute))

	assert.Equal(t, checkpoint.Add(90*time.Minute), out.CurrentSimTime)
	assert.Equal(t, int64(646), out.Facility(1).Quantity(typeRawA))
}

func TestSimulator_ExtractorFactoryStorageChain(t *testing.T) {
	// Arrange - extractor feeds a factory, factory output lands in storage
	checkpoint := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	col := newTestColony(t, checkpoint)
	addExtractor(t, col, 1, typeRawA, 100, time.Hour, checkpoint, checkpoint.Add(48*time.Hour))
	addFactory(t, col, 2, mustSchematic(t, 77, typeRefined, 1, time.Hour, map[int64]int64{typeRawA: 600}))
	addStorage(t, col, 3, colony.KindStorage)
	addRoute(t, col, 1, 1, 2, typeRawA, 0)
	addRoute(t, col, 2, 2, 3, typeRefined, 0)

	// Act
	out := newSimulator(checkpoint).Run(col, checkpoint.Add(2*time.Hour))

	// Assert
	// Cycle 1 (T+1h): 646 extracted, 600 admitted, factory starts.
	// Cycle 2 (T+2h): 399 extracted but the factory is mid-cycle with a met
	// buffer, so 46+399 strand at the extractor; then the factory completes
	// and its unit of output routes to storage.
	assert.Equal(t, int64(445), out.Facility(1).Quantity(typeRawA))
	assert.Zero(t, out.Facility(2).Quantity(typeRawA))
	assert.Equal(t, int64(1), out.Facility(3).Quantity(typeRefined))
	assert.InDelta(t, 1.5, out.Facility(3).CapacityUsed, 1e-9)
}

func TestSimulator_DeterministicReplay(t *testing.T) {
	checkpoint := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	build := func() *colony.Colony {
		col := newTestColony(t, checkpoint)
		addExtractor(t, col, 1, typeRawA, 250, time.Hour, checkpoint, checkpoint.Add(48*time.Hour))
		addExtractor(t, col, 4, typeRawB, 100, 30*time.Minute, checkpoint, checkpoint.Add(48*time.Hour))
		addFactory(t, col, 2, mustSchematic(t, 77, typeRefined, 1, time.Hour, map[int64]int64{
			typeRawA: 800,
			typeRawB: 200,
		}))
		addStorage(t, col, 3, colony.KindLaunchpad)
		addRoute(t, col, 1, 1, 2, typeRawA, 0)
		addRoute(t, col, 2, 4, 2, typeRawB, 0)
		addRoute(t, col, 3, 2, 3, typeRefined, 0)
		addRoute(t, col, 4, 1, 3, typeRawA, 0)
		return col
	}

	a := newSimulator(checkpoint).Run(build(), checkpoint.Add(12*time.Hour))
	b := newSimulator(checkpoint).Run(build(), checkpoint.Add(12*time.Hour))

	require.Equal(t, a.CurrentSimTime, b.CurrentSimTime)
	for _, fa := range a.Facilities() {
		fb := b.Facility(fa.ID)
		require.NotNil(t, fb)
		assert.Equal(t, fa.Contents, fb.Contents, "facility %d contents", fa.ID)
		assert.Equal(t, fa.Status, fb.Status, "facility %d status", fa.ID)
		assert.Equal(t, fa.CapacityUsed, fb.CapacityUsed, "facility %d capacity", fa.ID)
		assert.Equal(t, fa.LastRunTime, fb.LastRunTime, "facility %d last run", fa.ID)
	}
}

func TestSimulator_RunUntilIdleStopsAtExpiry(t *testing.T) {
	// Arrange - the program expires after its second cycle completes
	checkpoint := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	col := newTestColony(t, checkpoint)
	addExtractor(t, col, 1, typeRawA, 100, time.Hour, checkpoint, checkpoint.Add(150*time.Minute))
	addStorage(t, col, 2, colony.KindStorage)
	addRoute(t, col, 1, 1, 2, typeRawA, 0)

	// Act
	out := newSimulator(checkpoint).RunUntilIdle(col)

	// Assert - clock rests where activity stopped, not at any wall target
	assert.Equal(t, checkpoint.Add(2*time.Hour), out.CurrentSimTime)
	assert.Equal(t, int64(646+399), out.Facility(2).Quantity(typeRawA))

	// No cycle remains, but the program's expiry is still a key time.
	at, ok := colony.NextKeyTime(out)
	require.True(t, ok)
	assert.Equal(t, checkpoint.Add(150*time.Minute), at)
}

func TestSimulator_RunUntilIdleStopsImmediatelyOnFullStorage(t *testing.T) {
	// Arrange - a command center (500 m3) that cannot hold one cycle
	checkpoint := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	col := newTestColony(t, checkpoint)
	col.Catalog[typeRawA] = 10 // bulky commodity for this scenario
	addExtractor(t, col, 1, typeRawA, 100, time.Hour, checkpoint, checkpoint.Add(48*time.Hour))
	cc := addStorage(t, col, 2, colony.KindCommandCenter)
	addRoute(t, col, 1, 1, 2, typeRawA, 0)

	// Act
	out := newSimulator(checkpoint).RunUntilIdle(col)

	// Assert - full storage is terminal: the run stops at the first stall
	// instead of grinding on to program expiry
	assert.Equal(t, checkpoint.Add(time.Hour), out.CurrentSimTime)
	assert.Equal(t, int64(50), out.Facility(2).Quantity(typeRawA))
	assert.Equal(t, int64(646-50), out.Facility(1).Quantity(typeRawA))
	assert.Equal(t, colony.StatusStorageFull, out.Facility(2).Status)
	_ = cc
}

func TestRefreshStatuses_ColonyAggregates(t *testing.T) {
	checkpoint := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	col := newTestColony(t, checkpoint)
	addExtractor(t, col, 1, typeRawA, 100, time.Hour, checkpoint, checkpoint.Add(48*time.Hour))
	addFactory(t, col, 2, nil)
	addStorage(t, col, 3, colony.KindStorage)
	addStorage(t, col, 4, colony.KindLaunchpad)
	addStorage(t, col, 5, colony.KindCommandCenter)

	summary := col.RefreshStatuses(checkpoint)

	assert.True(t, summary.Working) // active extractor
	assert.False(t, summary.StorageFull)
	assert.Equal(t, 1, summary.CountsByKind[colony.KindExtractor])
	assert.Equal(t, 1, summary.CountsByKind[colony.KindFactory])
	assert.Equal(t, 1, summary.CountsByKind[colony.KindStorage])
	assert.Equal(t, 1, summary.CountsByKind[colony.KindLaunchpad])
	assert.Equal(t, 1, summary.CountsByKind[colony.KindCommandCenter])
}

func TestNextKeyTime(t *testing.T) {
	checkpoint := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("earliest of run time and expiry", func(t *testing.T) {
		col := newTestColony(t, checkpoint)
		addExtractor(t, col, 1, typeRawA, 100, time.Hour, checkpoint, checkpoint.Add(48*time.Hour))

		at, ok := colony.NextKeyTime(col)
		require.True(t, ok)
		assert.Equal(t, checkpoint.Add(time.Hour), at)
	})

	t.Run("expiry wins when no cycle remains", func(t *testing.T) {
		col := newTestColony(t, checkpoint)
		f := addExtractor(t, col, 1, typeRawA, 100, time.Hour, checkpoint, checkpoint.Add(90*time.Minute))
		f.LastRunTime = checkpoint.Add(time.Hour)

		at, ok := colony.NextKeyTime(col)
		require.True(t, ok)
		assert.Equal(t, checkpoint.Add(90*time.Minute), at)
	})

	t.Run("quiescent colony has no key time", func(t *testing.T) {
		col := newTestColony(t, checkpoint)
		addStorage(t, col, 1, colony.KindStorage)
		addFactory(t, col, 2, nil)

		_, ok := colony.NextKeyTime(col)
		assert.False(t, ok)
	})
}

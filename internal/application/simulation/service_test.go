package simulation_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonysim-go/internal/adapters/persistence"
	"github.com/andrescamacho/colonysim-go/internal/application/simulation"
	"github.com/andrescamacho/colonysim-go/internal/domain/shared"
	"github.com/andrescamacho/colonysim-go/test/helpers"
)

func newTestService(t *testing.T, clock shared.Clock) *simulation.Service {
	db := helpers.NewTestDB(t)
	helpers.SeedStaticData(t, db)
	colonies := persistence.NewGormColonyRepository(db)
	static := persistence.NewGormStaticDataRepository(db)
	return simulation.NewService(colonies, static, clock)
}

func TestService_ImportAndLoad(t *testing.T) {
	// Arrange
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, shared.NewMockClock(start))

	// Act
	err := svc.Import(context.Background(), helpers.SampleSnapshot(1, start))

	// Assert
	require.NoError(t, err)
	col, err := svc.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), col.ID)
	assert.Len(t, col.Facilities(), 3)
	assert.Len(t, col.Routes, 2)
}

func TestService_ImportRejectsInvalidSnapshot(t *testing.T) {
	// Arrange
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, shared.NewMockClock(start))
	snap := &simulation.ColonySnapshot{ColonyID: 1, CheckpointTime: start}

	// Act - no facilities
	err := svc.Import(context.Background(), snap)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid colony snapshot")
}

func TestService_SimulateTo_ProducesAndSaves(t *testing.T) {
	// Arrange - extractor feeds a factory that ships refined output to storage
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, shared.NewMockClock(start))
	require.NoError(t, svc.Import(context.Background(), helpers.SampleSnapshot(1, start)))

	// Act - first factory cycle starts at +30m and completes at +60m
	result, err := svc.SimulateTo(context.Background(), 1, start.Add(time.Hour), true)

	// Assert
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.RunID, "sim-"))
	assert.True(t, start.Add(time.Hour).Equal(result.Colony.CurrentSimTime))

	store := result.Colony.Facility(3)
	require.NotNil(t, store)
	assert.Equal(t, int64(5), store.Quantity(helpers.TypeRefined))

	// The saved checkpoint reflects the advanced state
	reloaded, err := svc.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, start.Add(time.Hour).Equal(reloaded.CurrentSimTime))
	assert.Equal(t, int64(5), reloaded.Facility(3).Quantity(helpers.TypeRefined))
}

func TestService_SimulateTo_DryRunKeepsCheckpoint(t *testing.T) {
	// Arrange
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, shared.NewMockClock(start))
	require.NoError(t, svc.Import(context.Background(), helpers.SampleSnapshot(1, start)))

	// Act
	result, err := svc.SimulateTo(context.Background(), 1, start.Add(time.Hour), false)

	// Assert - the run advanced but the stored checkpoint did not
	require.NoError(t, err)
	assert.True(t, start.Add(time.Hour).Equal(result.Colony.CurrentSimTime))
	reloaded, err := svc.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, start.Equal(reloaded.CurrentSimTime))
}

func TestService_SimulateToNow_UsesClock(t *testing.T) {
	// Arrange
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	clock := shared.NewMockClock(start)
	svc := newTestService(t, clock)
	require.NoError(t, svc.Import(context.Background(), helpers.SampleSnapshot(1, start)))
	clock.Advance(45 * time.Minute)

	// Act
	result, err := svc.SimulateToNow(context.Background(), 1, false)

	// Assert
	require.NoError(t, err)
	assert.True(t, start.Add(45*time.Minute).Equal(result.Colony.CurrentSimTime))
}

func TestService_SimulateTo_UnknownColony(t *testing.T) {
	// Arrange
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, shared.NewMockClock(start))

	// Act
	_, err := svc.SimulateTo(context.Background(), 42, start.Add(time.Hour), false)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, simulation.ErrColonyNotFound))
}

func TestService_NextKeyTime(t *testing.T) {
	// Arrange
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, shared.NewMockClock(start))
	require.NoError(t, svc.Import(context.Background(), helpers.SampleSnapshot(1, start)))

	// Act
	at, ok, err := svc.NextKeyTime(context.Background(), 1)

	// Assert - first extractor cycle lands 30 minutes after install
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, start.Add(30*time.Minute).Equal(at))
}

func TestService_List(t *testing.T) {
	// Arrange
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, shared.NewMockClock(start))
	require.NoError(t, svc.Import(context.Background(), helpers.SampleSnapshot(1, start)))
	require.NoError(t, svc.Import(context.Background(), helpers.SampleSnapshot(2, start)))

	// Act
	headers, err := svc.List(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, headers, 2)
	assert.Equal(t, "Test Colony", headers[0].Name)
	assert.Equal(t, 3, headers[0].Facilities)
}

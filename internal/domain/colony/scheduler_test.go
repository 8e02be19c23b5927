package colony_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonysim-go/internal/domain/colony"
)

func TestSchedule_PopsInTimeOrder(t *testing.T) {
	// Arrange
	q := colony.NewSchedule()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	q.Add(base.Add(3*time.Hour), 1)
	q.Add(base.Add(1*time.Hour), 2)
	q.Add(base.Add(2*time.Hour), 3)

	// Act / Assert
	ev, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, int64(2), ev.FacilityID)

	ev, _ = q.Pop()
	assert.Equal(t, int64(3), ev.FacilityID)

	ev, _ = q.Pop()
	assert.Equal(t, int64(1), ev.FacilityID)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestSchedule_EqualTimesTieBreakByFacilityID(t *testing.T) {
	q := colony.NewSchedule()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	q.Add(at, 9)
	q.Add(at, 4)
	q.Add(at, 7)

	var order []int64
	for {
		ev, ok := q.Pop()
		if !ok {
			break
		}
		order = append(order, ev.FacilityID)
	}
	assert.Equal(t, []int64{4, 7, 9}, order)
}

func TestSchedule_AddKeepsEarlierTime(t *testing.T) {
	q := colony.NewSchedule()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	q.Add(base.Add(time.Hour), 1)
	q.Add(base.Add(2*time.Hour), 1) // later: must not delay
	require.Equal(t, 1, q.Len())

	ev, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, base.Add(time.Hour), ev.At)

	q.Add(base.Add(2*time.Hour), 1)
	q.Add(base.Add(30*time.Minute), 1) // earlier: must replace
	ev, _ = q.Pop()
	assert.Equal(t, base.Add(30*time.Minute), ev.At)
}

func TestSchedule_OneEntryPerFacility(t *testing.T) {
	q := colony.NewSchedule()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		q.Add(base.Add(time.Duration(i)*time.Minute), 42)
	}
	assert.Equal(t, 1, q.Len())
}

func TestSchedule_PeekDoesNotRemove(t *testing.T) {
	q := colony.NewSchedule()
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	q.Add(at, 5)

	ev, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, int64(5), ev.FacilityID)
	assert.Equal(t, 1, q.Len())
}

func TestSchedule_Reset(t *testing.T) {
	q := colony.NewSchedule()
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	q.Add(at, 1)
	q.Add(at, 2)

	q.Reset()

	assert.Equal(t, 0, q.Len())
	_, ok := q.Pop()
	assert.False(t, ok)
	// Facility ids are free for reuse after a reset.
	q.Add(at, 1)
	assert.Equal(t, 1, q.Len())
}

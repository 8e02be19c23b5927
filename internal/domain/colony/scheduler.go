package colony

import (
	"container/heap"
	"time"
)

// Event is one pending unit of simulation work: a facility due to run at a
// point in simulated time. A facility has at most one pending event.
type Event struct {
	At         time.Time
	FacilityID int64
}

type scheduleEntry struct {
	at         time.Time
	facilityID int64
	index      int // heap index, maintained by eventHeap
}

// eventHeap orders entries by (time, facilityID) ascending. The facility id
// is a pure tie-break so identical inputs replay the exact same event
// sequence; it carries no priority meaning.
type eventHeap []*scheduleEntry

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if !h[i].at.Equal(h[j].at) {
		return h[i].at.Before(h[j].at)
	}
	return h[i].facilityID < h[j].facilityID
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x any) {
	entry := x.(*scheduleEntry)
	entry.index = len(*h)
	*h = append(*h, entry)
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return entry
}

// Schedule is the time-ordered work queue of one simulation run. It is a
// value owned by a single Simulate call, never shared between colonies.
type Schedule struct {
	entries eventHeap
	pending map[int64]*scheduleEntry
}

// NewSchedule creates an empty schedule
func NewSchedule() *Schedule {
	return &Schedule{pending: make(map[int64]*scheduleEntry)}
}

// Add inserts or replaces the pending event for a facility, keeping the
// earlier of the existing and proposed times. A facility already due sooner
// is never delayed.
func (s *Schedule) Add(at time.Time, facilityID int64) {
	if existing, ok := s.pending[facilityID]; ok {
		if at.Before(existing.at) {
			existing.at = at
			heap.Fix(&s.entries, existing.index)
		}
		return
	}
	entry := &scheduleEntry{at: at, facilityID: facilityID}
	s.pending[facilityID] = entry
	heap.Push(&s.entries, entry)
}

// Pop removes and returns the earliest pending event
func (s *Schedule) Pop() (Event, bool) {
	if len(s.entries) == 0 {
		return Event{}, false
	}
	entry := heap.Pop(&s.entries).(*scheduleEntry)
	delete(s.pending, entry.facilityID)
	return Event{At: entry.at, FacilityID: entry.facilityID}, true
}

// Peek returns the earliest pending event without removing it
func (s *Schedule) Peek() (Event, bool) {
	if len(s.entries) == 0 {
		return Event{}, false
	}
	entry := s.entries[0]
	return Event{At: entry.at, FacilityID: entry.facilityID}, true
}

// Len returns the number of pending events
func (s *Schedule) Len() int {
	return len(s.entries)
}

// Reset discards all pending events
func (s *Schedule) Reset() {
	s.entries = s.entries[:0]
	s.pending = make(map[int64]*scheduleEntry)
}

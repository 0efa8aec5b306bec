package journal

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/raycoarana/wiremock/pkg/stub"
)

// DefaultCapacity bounds the in-memory journal when no capacity is given.
const DefaultCapacity = 1000

// InMemory implements Store with a bounded FIFO buffer. It is safe for
// concurrent use by the server's request goroutines.
type InMemory struct {
	mu        sync.RWMutex
	events    []*stub.ServeEvent
	completed map[uuid.UUID]bool
	capacity  int
}

// NewInMemory creates an in-memory journal holding at most capacity events.
// Non-positive capacities fall back to DefaultCapacity.
func NewInMemory(capacity int) *InMemory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InMemory{
		events:    make([]*stub.ServeEvent, 0, capacity),
		completed: make(map[uuid.UUID]bool),
		capacity:  capacity,
	}
}

// RequestReceived appends the event, evicting the oldest entry when the
// journal is at capacity.
func (j *InMemory) RequestReceived(event *stub.ServeEvent) {
	if event == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.events) >= j.capacity {
		evicted := j.events[0]
		j.events = j.events[1:]
		delete(j.completed, evicted.ID)
	}
	j.events = append(j.events, event)
}

// ServeCompleted marks the event as fully served. Unknown events (evicted or
// never received) are ignored.
func (j *InMemory) ServeCompleted(event *stub.ServeEvent) {
	if event == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, e := range j.events {
		if e.ID == event.ID {
			j.completed[event.ID] = true
			return
		}
	}
}

// IsCompleted reports whether ServeCompleted has been recorded for the id.
func (j *InMemory) IsCompleted(id uuid.UUID) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.completed[id]
}

// Get retrieves a journaled event by id.
func (j *InMemory) Get(id uuid.UUID) *stub.ServeEvent {
	j.mu.RLock()
	defer j.mu.RUnlock()

	for _, e := range j.events {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// List returns journaled events, newest first, optionally filtered.
func (j *InMemory) List(filter *Filter) []*stub.ServeEvent {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]*stub.ServeEvent, 0, len(j.events))
	for i := len(j.events) - 1; i >= 0; i-- {
		e := j.events[i]
		if filter != nil && !matchesFilter(e, filter) {
			continue
		}
		out = append(out, e)
		if filter != nil && filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out
}

// Count returns the number of journaled events.
func (j *InMemory) Count() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.events)
}

// Reset removes all journaled events.
func (j *InMemory) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = j.events[:0]
	j.completed = make(map[uuid.UUID]bool)
}

// ServeEvents returns the journaled events, newest first. Together with
// ResetRequests it satisfies the admin handle extensions receive.
func (j *InMemory) ServeEvents() []*stub.ServeEvent {
	return j.List(nil)
}

// ResetRequests clears the journal.
func (j *InMemory) ResetRequests() {
	j.Reset()
}

func matchesFilter(e *stub.ServeEvent, f *Filter) bool {
	if f.Method != "" && (e.Request == nil || !strings.EqualFold(e.Request.Method, f.Method)) {
		return false
	}
	if f.Path != "" && (e.Request == nil || !strings.HasPrefix(e.Request.Path, f.Path)) {
		return false
	}
	if f.OnlyMatched && !e.WasMatched() {
		return false
	}
	if f.OnlyUnmatched && e.WasMatched() {
		return false
	}
	return true
}

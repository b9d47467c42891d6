package memory

import (
	"context"
	"sync"

	audit "distributors/pkg/platform/audit"
)

// InMemoryStore keeps events in arrival order. With a capacity it retains
// only the newest capacity events.
type InMemoryStore struct {
	mu       sync.RWMutex
	events   []audit.Event
	capacity int
}

type Option func(*InMemoryStore)

// WithCapacity bounds the store to the newest n events. n <= 0 means
// unbounded.
func WithCapacity(n int) Option {
	return func(s *InMemoryStore) {
		s.capacity = max(n, 0)
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	// Compact once the backlog doubles so trimming stays amortised.
	if s.capacity > 0 && len(s.events) >= 2*s.capacity {
		s.events = append([]audit.Event(nil), s.events[len(s.events)-s.capacity:]...)
	}
	return nil
}

// retained returns the events inside the capacity window. Callers hold mu.
func (s *InMemoryStore) retained() []audit.Event {
	if s.capacity > 0 && len(s.events) > s.capacity {
		return s.events[len(s.events)-s.capacity:]
	}
	return s.events
}

// ListByEntity returns the events recorded for one record, oldest first.
func (s *InMemoryStore) ListByEntity(_ context.Context, entity string, entityID int64) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []audit.Event{}
	for _, e := range s.retained() {
		if e.Entity == entity && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListRecent returns up to limit of the newest events, oldest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := s.retained()
	start := max(len(events)-limit, 0)
	return append([]audit.Event{}, events[start:]...), nil
}

package memory

import (
	"context"
	"sync"

	audit "balangay/pkg/platform/audit"
)

// InMemoryStore keeps audit events in a slice for tests and development.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

// NewInMemoryStore creates an empty in-memory audit store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByResident returns events for one resident in append order.
func (s *InMemoryStore) ListByResident(_ context.Context, residentID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.ResidentID == residentID {
			out = append(out, e)
		}
	}
	return out, nil
}

// All returns every stored event.
func (s *InMemoryStore) All() []audit.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...)
}

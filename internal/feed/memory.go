package feed

import (
	"context"
	"sync"
)

// Memory is an in-process feed for tests and single-node development.
type Memory struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
	log  []Event
}

// NewMemory creates an empty in-process feed.
func NewMemory() *Memory {
	return &Memory{subs: make(map[chan Event]struct{})}
}

func (m *Memory) Publish(_ context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = append(m.log, event)
	for ch := range m.subs {
		// Drop rather than block: a slow subscriber misses a signal but the
		// next event triggers the same full refetch.
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (m *Memory) Subscribe(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 16)
	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subs, ch)
		m.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

// Published returns a copy of every event published so far.
func (m *Memory) Published() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event{}, m.log...)
}

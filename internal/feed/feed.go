// Package feed publishes resident-list change notifications. Subscribers get
// a signal to refetch the full list, never a patch, so ordering between a
// local write and an incoming refresh does not matter: the last completed
// fetch wins.
package feed

import (
	"context"
	"time"
)

// Event tells subscribers that something about the resident list changed.
type Event struct {
	// Kind is "profile" or "status".
	Kind string `json:"kind"`
	// ResidentID identifies the changed record, as a hint only; clients
	// refetch the full list regardless.
	ResidentID string    `json:"resident_id"`
	At         time.Time `json:"at"`
}

// Publisher fans a change event out to subscribers. Publishing is best
// effort: a failed publish is logged, not returned to the mutating request.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Subscriber delivers change events until the context ends.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan Event, error)
}

// Noop discards events when no feed backend is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

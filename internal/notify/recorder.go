package notify

import (
	"context"
	"sync"

	id "balangay/pkg/domain"
)

// Recorder captures sent notifications for assertions in tests. When Fail is
// set, Send returns that error while still recording the attempt.
type Recorder struct {
	mu    sync.Mutex
	calls []RecordedCall
	Fail  error
}

// RecordedCall is one captured Send invocation.
type RecordedCall struct {
	Kind       EventKind
	ResidentID id.ResidentID
	Payload    Payload
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Send(_ context.Context, kind EventKind, residentID id.ResidentID, payload Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, RecordedCall{Kind: kind, ResidentID: residentID, Payload: payload})
	return r.Fail
}

// Calls returns a copy of all recorded sends.
func (r *Recorder) Calls() []RecordedCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedCall{}, r.calls...)
}

// CallsOf returns the recorded sends of one kind.
func (r *Recorder) CallsOf(kind EventKind) []RecordedCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []RecordedCall
	for _, c := range r.calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Package notify adapts the outbound resident-notification API. Delivery is
// best effort: the review service treats a send failure as a warning, never
// as a reason to roll back a committed status transition.
package notify

import (
	"context"

	id "balangay/pkg/domain"
)

// EventKind selects which notification endpoint is called. One HTTP endpoint
// exists per kind on the notification API.
type EventKind string

const (
	EventApproval          EventKind = "approval"
	EventRejection         EventKind = "rejection"
	EventUpdateRequest     EventKind = "update-request"
	EventUpdateApproval    EventKind = "update-approval"
	EventUpdateDecline     EventKind = "update-decline"
	EventPendingSubmission EventKind = "pending-submission"
)

// Payload carries the per-event fields. Reason is set for rejection,
// update-request, and update-decline events.
type Payload struct {
	Reason string `json:"reason,omitempty"`
}

// Gateway sends templated notifications keyed by event kind.
//
// Contract: fire-and-forget from the caller's perspective. Implementations
// return errors for observability, but callers surface them as warnings and
// never abort the surrounding workflow operation.
type Gateway interface {
	Send(ctx context.Context, kind EventKind, residentID id.ResidentID, payload Payload) error
}

// Noop discards every notification. Used when no notification API is
// configured.
type Noop struct{}

func (Noop) Send(context.Context, EventKind, id.ResidentID, Payload) error { return nil }

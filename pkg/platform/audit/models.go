package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose. This
// enables different retention policies and routing on the consuming side.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance:
	// everything that creates, reviews, or removes a resident's record.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine content changes useful for
	// operational visibility (transparency rosters, footer edits).
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	// ResidentID is the subject resident, empty for transparency events.
	ResidentID string
	// Subject identifies non-resident subjects (official IDs, config rows).
	Subject string
	Action  string
	// Actor is the admin display name for admin actions, "resident" for
	// self-service actions.
	Actor string
	// Reason carries the rejection/update reason when the action has one.
	Reason    string
	RequestID string
	ClientIP  string
	UserAgent string
}

// AuditEvent names every audited action.
type AuditEvent string

const (
	// Resident profile lifecycle
	EventProfileSubmitted   AuditEvent = "profile_submitted"
	EventProfileResubmitted AuditEvent = "profile_resubmitted"
	EventProfileDeleted     AuditEvent = "profile_deleted"

	// Review workflow
	EventProfileApproved AuditEvent = "profile_approved"
	EventProfileRejected AuditEvent = "profile_rejected"
	EventUpdateRequested AuditEvent = "update_requested"
	EventUpdateAccepted  AuditEvent = "update_accepted"
	EventUpdateDeclined  AuditEvent = "update_declined"

	// Transparency content
	EventOfficialCreated AuditEvent = "official_created"
	EventOfficialUpdated AuditEvent = "official_updated"
	EventOfficialDeleted AuditEvent = "official_deleted"
	EventFooterUpdated   AuditEvent = "footer_updated"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventProfileSubmitted:   CategoryCompliance,
	EventProfileResubmitted: CategoryCompliance,
	EventProfileDeleted:     CategoryCompliance,
	EventProfileApproved:    CategoryCompliance,
	EventProfileRejected:    CategoryCompliance,
	EventUpdateRequested:    CategoryCompliance,
	EventUpdateAccepted:     CategoryCompliance,
	EventUpdateDeclined:     CategoryCompliance,

	EventOfficialCreated: CategoryOperations,
	EventOfficialUpdated: CategoryOperations,
	EventOfficialDeleted: CategoryOperations,
	EventFooterUpdated:   CategoryOperations,
}

// Category returns the category for the event, defaulting to operations for
// unknown actions so nothing is silently dropped.
func (e AuditEvent) Category() EventCategory {
	if c, ok := eventCategories[e]; ok {
		return c
	}
	return CategoryOperations
}

// Store persists audit events. The postgres implementation writes to the
// outbox table; the worker relays outbox rows to kafka.
type Store interface {
	Append(ctx context.Context, event Event) error
}

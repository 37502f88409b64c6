package models

import (
	"strings"
	"time"

	id "balangay/pkg/domain"
	dErrors "balangay/pkg/domain-errors"
)

// Status enumerates the resident profile review states. The numbering is
// carried over from the original registration database and is stored as-is;
// treat it as opaque, not ordinal.
type Status int

const (
	StatusApproved        Status = 1
	StatusRejected        Status = 2
	StatusPending         Status = 3
	StatusUpdateRequested Status = 4
	StatusUpdateApproved  Status = 5
)

var statusNames = map[Status]string{
	StatusApproved:        "approved",
	StatusRejected:        "rejected",
	StatusPending:         "pending",
	StatusUpdateRequested: "update_requested",
	StatusUpdateApproved:  "update_approved",
}

// IsValid reports whether the value is one of the five known states.
func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// String returns the snake_case name used in API responses and logs.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// InApprovedCategory reports whether the profile currently counts as approved
// for display purposes. UpdateApproved marks an approved profile whose edit
// cycle completed without re-review.
func (s Status) InApprovedCategory() bool {
	return s == StatusApproved || s == StatusUpdateApproved
}

// ProfileStatus is the review record paired one-to-one with a resident
// profile.
//
// Invariants:
//   - Status is always one of the five enumeration values
//   - RejectionReason is non-nil only after Reject, RequestUpdate, or
//     DeclineUpdate; AcceptUpdate clears it
//   - UpdatedAt changes atomically with Status, never independently
//
// Transitions are expressed as Can/Apply method pairs so the service layer
// can validate before mutating inside a store transaction. There is no
// optimistic concurrency token: two admins acting on the same resident race
// with last-write-wins semantics. That weakness is documented rather than
// fixed because serializing would change observable behavior for concurrent
// admin use.
type ProfileStatus struct {
	ResidentID      id.ResidentID `json:"resident_id"`
	Status          Status        `json:"status"`
	RejectionReason *string       `json:"rejection_reason,omitempty"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// NewProfileStatus returns the record created alongside a first submission.
func NewProfileStatus(residentID id.ResidentID, now time.Time) *ProfileStatus {
	return &ProfileStatus{
		ResidentID: residentID,
		Status:     StatusPending,
		UpdatedAt:  now,
	}
}

// CanApprove checks the Pending -> Approved transition.
func (p *ProfileStatus) CanApprove() error {
	if p.Status != StatusPending {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"cannot approve a profile in state %s", p.Status)
	}
	return nil
}

// ApplyApprove transitions Pending -> Approved. Call CanApprove first.
func (p *ProfileStatus) ApplyApprove(now time.Time) {
	p.Status = StatusApproved
	p.UpdatedAt = now
}

// CanReject checks the Pending -> Rejected transition and the non-empty
// reason requirement. A validation failure means no transition occurs and no
// notification is sent.
func (p *ProfileStatus) CanReject(reason string) error {
	if err := requireReason(reason, "rejection"); err != nil {
		return err
	}
	if p.Status != StatusPending {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"cannot reject a profile in state %s", p.Status)
	}
	return nil
}

// ApplyReject transitions Pending -> Rejected and persists the reason.
func (p *ProfileStatus) ApplyReject(reason string, now time.Time) {
	p.Status = StatusRejected
	p.RejectionReason = &reason
	p.UpdatedAt = now
}

// CanRequestUpdate checks the Approved/UpdateApproved -> UpdateRequested
// transition. Recalling from UpdateApproved is allowed because that state is
// an approved profile whose previous edit cycle completed.
func (p *ProfileStatus) CanRequestUpdate(reason string) error {
	if err := requireReason(reason, "update request"); err != nil {
		return err
	}
	if !p.Status.InApprovedCategory() {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"cannot request an update for a profile in state %s", p.Status)
	}
	return nil
}

// ApplyRequestUpdate transitions to UpdateRequested, persisting the reason
// the resident sees as the update request.
func (p *ProfileStatus) ApplyRequestUpdate(reason string, now time.Time) {
	p.Status = StatusUpdateRequested
	p.RejectionReason = &reason
	p.UpdatedAt = now
}

// CanAcceptUpdate checks the UpdateRequested -> UpdateApproved transition.
func (p *ProfileStatus) CanAcceptUpdate() error {
	if p.Status != StatusUpdateRequested {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"cannot accept an update for a profile in state %s", p.Status)
	}
	return nil
}

// ApplyAcceptUpdate transitions to UpdateApproved and clears the reason.
func (p *ProfileStatus) ApplyAcceptUpdate(now time.Time) {
	p.Status = StatusUpdateApproved
	p.RejectionReason = nil
	p.UpdatedAt = now
}

// CanDeclineUpdate checks the UpdateRequested -> Approved transition. A
// previously approved resident keeps approved status while declined, which is
// why the target is Approved rather than Rejected.
func (p *ProfileStatus) CanDeclineUpdate(reason string) error {
	if err := requireReason(reason, "decline"); err != nil {
		return err
	}
	if p.Status != StatusUpdateRequested {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"cannot decline an update for a profile in state %s", p.Status)
	}
	return nil
}

// ApplyDeclineUpdate transitions back to Approved and persists the reason.
func (p *ProfileStatus) ApplyDeclineUpdate(reason string, now time.Time) {
	p.Status = StatusApproved
	p.RejectionReason = &reason
	p.UpdatedAt = now
}

// ApplyResubmission handles a resident resubmitting their profile. When the
// profile was recalled for edits (UpdateRequested) the edit cycle completes
// as UpdateApproved without re-review; every other prior state returns to
// Pending. The asymmetry is carried over from the source system on purpose.
// The stored reason is left untouched: a resubmission has no admin-visible
// side effect beyond the status change itself.
func (p *ProfileStatus) ApplyResubmission(now time.Time) {
	if p.Status == StatusUpdateRequested {
		p.Status = StatusUpdateApproved
	} else {
		p.Status = StatusPending
	}
	p.UpdatedAt = now
}

func requireReason(reason, label string) error {
	if strings.TrimSpace(reason) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, label+" reason cannot be empty")
	}
	return nil
}

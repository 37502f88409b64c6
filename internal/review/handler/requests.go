package handler

import (
	"strings"

	dErrors "balangay/pkg/domain-errors"
)

// ReasonRequest is the body of every review action that records a reason the
// resident will see.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// Validate trims and requires the reason. Rejecting here means the transition
// never starts, so no notification is attempted for an empty reason.
func (r *ReasonRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "reason is required")
	}
	if len(r.Reason) > 2000 {
		return dErrors.New(dErrors.CodeInvalidInput, "reason must be at most 2000 characters")
	}
	return nil
}

package handler

import (
	"time"

	"balangay/internal/review/models"
	"balangay/internal/review/service"
)

// StatusResponse is the JSON shape for a resident's review status. Status
// keeps the stored numeric value; StatusLabel carries the readable name.
type StatusResponse struct {
	ResidentID      string    `json:"resident_id"`
	Status          int       `json:"status"`
	StatusLabel     string    `json:"status_label"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
	Warning         string    `json:"warning,omitempty"`
}

// FromStatus converts a status record into the response shape.
func FromStatus(status *models.ProfileStatus) StatusResponse {
	return StatusResponse{
		ResidentID:      status.ResidentID.String(),
		Status:          int(status.Status),
		StatusLabel:     status.Status.String(),
		RejectionReason: status.RejectionReason,
		UpdatedAt:       status.UpdatedAt,
	}
}

// FromOutcome converts a transition outcome, carrying the notification
// warning when delivery failed.
func FromOutcome(outcome *service.Outcome) StatusResponse {
	resp := FromStatus(outcome.Status)
	resp.Warning = outcome.Warning
	return resp
}

package handler

import (
	"time"

	"balangay/internal/profile/models"
	"balangay/internal/profile/service"
	reviewmodels "balangay/internal/review/models"
)

// StatusView is the review status as rendered inside profile responses.
type StatusView struct {
	Status          int       `json:"status"`
	StatusLabel     string    `json:"status_label"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func statusView(status *reviewmodels.ProfileStatus) *StatusView {
	if status == nil {
		return nil
	}
	return &StatusView{
		Status:          int(status.Status),
		StatusLabel:     status.Status.String(),
		RejectionReason: status.RejectionReason,
		UpdatedAt:       status.UpdatedAt,
	}
}

// ResidentResponse is one resident's profile joined with its review status.
type ResidentResponse struct {
	Profile *models.ResidentProfile `json:"profile"`
	Status  *StatusView             `json:"status,omitempty"`
	Warning string                  `json:"warning,omitempty"`
}

// ListResponse is the admin resident listing.
type ListResponse struct {
	Residents []ResidentResponse `json:"residents"`
}

// FromRecord converts a service record into the response shape.
func FromRecord(record *service.ResidentRecord) ResidentResponse {
	return ResidentResponse{
		Profile: record.Profile,
		Status:  statusView(record.Status),
	}
}

// FromSubmitResult converts a submission outcome, carrying the notification
// warning when delivery failed.
func FromSubmitResult(result *service.SubmitResult) ResidentResponse {
	return ResidentResponse{
		Profile: result.Profile,
		Status:  statusView(result.Status),
		Warning: result.Warning,
	}
}

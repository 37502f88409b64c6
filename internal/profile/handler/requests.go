package handler

import (
	"balangay/internal/profile/models"
	dErrors "balangay/pkg/domain-errors"
)

// SubmitProfileRequest is the body of POST /profile. Deep validation of the
// household invariants happens in the service after normalization; this
// level only rejects obviously empty submissions.
type SubmitProfileRequest struct {
	HouseholdHead models.HouseholdHead     `json:"household_head"`
	Spouse        *models.Spouse           `json:"spouse,omitempty"`
	Composition   []models.HouseholdMember `json:"composition"`
	Census        models.Census            `json:"census"`
}

// Validate rejects bodies with no household head at all.
func (r *SubmitProfileRequest) Validate() error {
	if r.HouseholdHead == (models.HouseholdHead{}) {
		return dErrors.New(dErrors.CodeInvalidInput, "household_head is required")
	}
	if len(r.Composition) > 50 {
		return dErrors.New(dErrors.CodeInvalidInput, "composition must have at most 50 members")
	}
	return nil
}

// ToModel converts the request into the domain aggregate.
func (r *SubmitProfileRequest) ToModel() *models.ResidentProfile {
	return &models.ResidentProfile{
		HouseholdHead: r.HouseholdHead,
		Spouse:        r.Spouse,
		Composition:   r.Composition,
		Census:        r.Census,
	}
}

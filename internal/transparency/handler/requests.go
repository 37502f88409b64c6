package handler

import (
	"balangay/internal/transparency/models"
	"balangay/internal/transparency/service"
	dErrors "balangay/pkg/domain-errors"
)

// OfficialRequest is the body of official create/update calls. Field-level
// rules live on the model; this level only rejects an empty body.
type OfficialRequest struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	Suffix     string `json:"suffix,omitempty"`

	Position  string              `json:"position"`
	Type      models.OfficialType `json:"type"`
	TermStart int                 `json:"term_start"`
	TermEnd   int                 `json:"term_end"`
	Current   bool                `json:"current"`

	PortraitPath string `json:"portrait_path,omitempty"`
}

func (r *OfficialRequest) Validate() error {
	if *r == (OfficialRequest{}) {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}
	return nil
}

// ToModel converts the request into the roster entity.
func (r *OfficialRequest) ToModel() *models.OfficialRecord {
	return &models.OfficialRecord{
		FirstName:    r.FirstName,
		MiddleName:   r.MiddleName,
		LastName:     r.LastName,
		Suffix:       r.Suffix,
		Position:     r.Position,
		Type:         r.Type,
		TermStart:    r.TermStart,
		TermEnd:      r.TermEnd,
		Current:      r.Current,
		PortraitPath: r.PortraitPath,
	}
}

// FooterRequest is the body of PUT /admin/footer.
type FooterRequest struct {
	BarangayName  string `json:"barangay_name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	ContactEmail  string `json:"contact_email"`
	OfficeHours   string `json:"office_hours"`
	FacebookURL   string `json:"facebook_url,omitempty"`
}

func (r *FooterRequest) Validate() error {
	if *r == (FooterRequest{}) {
		return dErrors.New(dErrors.CodeInvalidInput, "request body is required")
	}
	return nil
}

// ToModel converts the request into the footer entity.
func (r *FooterRequest) ToModel() *models.FooterConfig {
	return &models.FooterConfig{
		BarangayName:  r.BarangayName,
		Address:       r.Address,
		ContactNumber: r.ContactNumber,
		ContactEmail:  r.ContactEmail,
		OfficeHours:   r.OfficeHours,
		FacebookURL:   r.FacebookURL,
	}
}

// RosterResponse is the public officials listing.
type RosterResponse struct {
	Officials []*service.RosterEntry `json:"officials"`
}

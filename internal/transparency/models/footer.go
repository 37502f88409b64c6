package models

import (
	"strings"
	"time"

	dErrors "balangay/pkg/domain-errors"
)

// FooterConfig is the singleton public-site footer settings row.
type FooterConfig struct {
	BarangayName  string    `json:"barangay_name"`
	Address       string    `json:"address"`
	ContactNumber string    `json:"contact_number"`
	ContactEmail  string    `json:"contact_email"`
	OfficeHours   string    `json:"office_hours"`
	FacebookURL   string    `json:"facebook_url,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Validate enforces the minimum the public footer needs to render.
func (f *FooterConfig) Validate() error {
	f.BarangayName = strings.TrimSpace(f.BarangayName)
	f.ContactEmail = strings.TrimSpace(f.ContactEmail)

	if f.BarangayName == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "barangay name is required")
	}
	if f.ContactEmail != "" && !strings.Contains(f.ContactEmail, "@") {
		return dErrors.New(dErrors.CodeInvalidInput, "contact email is malformed")
	}
	return nil
}

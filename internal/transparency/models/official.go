// Package models defines the transparency subsystem entities: the public
// officials roster and the singleton footer configuration.
package models

import (
	"sort"
	"strings"
	"time"

	id "balangay/pkg/domain"
	dErrors "balangay/pkg/domain-errors"
)

// OfficialType selects which roster an official belongs to.
type OfficialType string

const (
	TypeBarangay OfficialType = "barangay"
	TypeSK       OfficialType = "sk"
)

// IsValid reports whether the value is a known roster type.
func (t OfficialType) IsValid() bool {
	return t == TypeBarangay || t == TypeSK
}

// Leader positions sort ahead of everything else in their roster.
const (
	PositionPunongBarangay = "Punong Barangay"
	PositionSKChairperson  = "SK Chairperson"
)

// OfficialRecord is one entry in a public officials roster.
type OfficialRecord struct {
	ID         id.OfficialID `json:"id"`
	FirstName  string        `json:"first_name"`
	MiddleName string        `json:"middle_name,omitempty"`
	LastName   string        `json:"last_name"`
	Suffix     string        `json:"suffix,omitempty"`

	Position  string       `json:"position"`
	Type      OfficialType `json:"type"`
	TermStart int          `json:"term_start"`
	TermEnd   int          `json:"term_end"`
	Current   bool         `json:"current"`

	PortraitPath string `json:"portrait_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsLeader reports whether the official holds the leader position for their
// roster type.
func (o *OfficialRecord) IsLeader() bool {
	switch o.Type {
	case TypeBarangay:
		return o.Position == PositionPunongBarangay
	case TypeSK:
		return o.Position == PositionSKChairperson
	}
	return false
}

// Validate enforces roster entry requirements.
func (o *OfficialRecord) Validate() error {
	o.FirstName = strings.TrimSpace(o.FirstName)
	o.LastName = strings.TrimSpace(o.LastName)
	o.Position = strings.TrimSpace(o.Position)

	if o.FirstName == "" || o.LastName == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "official first and last name are required")
	}
	if o.Position == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "official position is required")
	}
	if !o.Type.IsValid() {
		return dErrors.Newf(dErrors.CodeInvalidInput, "official type must be %q or %q", TypeBarangay, TypeSK)
	}
	if o.TermStart == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "term start year is required")
	}
	if o.TermEnd != 0 && o.TermEnd < o.TermStart {
		return dErrors.New(dErrors.CodeInvalidInput, "term end year must not precede term start")
	}
	return nil
}

// SortForDisplay orders a roster for public rendering: leader first, then
// current officials before former ones, then later terms first, then
// alphabetical by surname.
func SortForDisplay(officials []*OfficialRecord) {
	sort.SliceStable(officials, func(i, j int) bool {
		a, b := officials[i], officials[j]
		if a.IsLeader() != b.IsLeader() {
			return a.IsLeader()
		}
		if a.Current != b.Current {
			return a.Current
		}
		if a.TermStart != b.TermStart {
			return a.TermStart > b.TermStart
		}
		return strings.ToLower(a.LastName) < strings.ToLower(b.LastName)
	})
}

// Package models defines the resident household profile aggregate and its
// validation rules.
package models

import (
	"strings"
	"time"

	id "balangay/pkg/domain"
	dErrors "balangay/pkg/domain-errors"
)

// Civil status values accepted on submission.
const (
	CivilStatusSingle    = "Single"
	CivilStatusMarried   = "Married"
	CivilStatusWidowed   = "Widowed"
	CivilStatusSeparated = "Separated"
)

// Relations that count against the census children count. Every other
// relation counts against the household member count.
const (
	RelationSon      = "Son"
	RelationDaughter = "Daughter"
)

// Address holds PSGC-coded address components plus the free-text street line.
type Address struct {
	RegionCode   string `json:"region_code"`
	ProvinceCode string `json:"province_code"`
	CityCode     string `json:"city_code"`
	BarangayCode string `json:"barangay_code"`
	Street       string `json:"street"`
}

// HouseholdHead is the primary applicant within a submitted profile.
type HouseholdHead struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	Suffix     string `json:"suffix,omitempty"`

	BirthDate   string `json:"birth_date"`
	Sex         string `json:"sex"`
	CivilStatus string `json:"civil_status"`
	Nationality string `json:"nationality"`
	Religion    string `json:"religion,omitempty"`

	Address Address `json:"address"`

	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`

	IDType   string `json:"id_type"`
	IDNumber string `json:"id_number"`

	Occupation            string `json:"occupation,omitempty"`
	Employer              string `json:"employer,omitempty"`
	EducationalAttainment string `json:"educational_attainment,omitempty"`

	PhotoPath string `json:"photo_path,omitempty"`
}

// Spouse is present only when the household head is married.
type Spouse struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`

	BirthDate  string `json:"birth_date"`
	Occupation string `json:"occupation,omitempty"`

	IDType     string `json:"id_type,omitempty"`
	IDNumber   string `json:"id_number,omitempty"`
	IDScanPath string `json:"id_scan_path,omitempty"`
}

// HouseholdMember is one entry in the household composition list.
type HouseholdMember struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Relation   string `json:"relation"`
	BirthDate  string `json:"birth_date,omitempty"`
	Occupation string `json:"occupation,omitempty"`
}

// Census is the flat answer set collected alongside the household data.
type Census struct {
	ChildrenCount    int    `json:"children_count"`
	HouseholdMembers int    `json:"household_members"`
	RegisteredVoter  string `json:"registered_voter"`
	VoterPrecinctNo  string `json:"voter_precinct_no,omitempty"`
	Renting          bool   `json:"renting"`
	OwnsHouse        bool   `json:"owns_house"`
	MonthlyIncome    string `json:"monthly_income,omitempty"`
	WaterSource      string `json:"water_source,omitempty"`
	ToiletType       string `json:"toilet_type,omitempty"`
}

// ResidentProfile is the household profile document, one per resident,
// keyed by the authenticated resident's ID.
type ResidentProfile struct {
	ResidentID    id.ResidentID     `json:"resident_id"`
	HouseholdHead HouseholdHead     `json:"household_head"`
	Spouse        *Spouse           `json:"spouse,omitempty"`
	Composition   []HouseholdMember `json:"composition"`
	Census        Census            `json:"census"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Normalize trims name and contact fields and clears the spouse when the
// civil status is anything but Married. Call before Validate.
func (p *ResidentProfile) Normalize() {
	h := &p.HouseholdHead
	h.FirstName = strings.TrimSpace(h.FirstName)
	h.MiddleName = strings.TrimSpace(h.MiddleName)
	h.LastName = strings.TrimSpace(h.LastName)
	h.CivilStatus = strings.TrimSpace(h.CivilStatus)
	h.ContactNumber = strings.TrimSpace(h.ContactNumber)
	h.Email = strings.TrimSpace(h.Email)

	if h.CivilStatus != CivilStatusMarried {
		p.Spouse = nil
	}
	p.Census.VoterPrecinctNo = strings.TrimSpace(p.Census.VoterPrecinctNo)
}

// Validate enforces the submission invariants. It assumes Normalize ran.
func (p *ResidentProfile) Validate() error {
	h := p.HouseholdHead
	if h.FirstName == "" || h.LastName == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "household head first and last name are required")
	}
	if h.CivilStatus == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "household head civil status is required")
	}
	if h.Email != "" && !strings.Contains(h.Email, "@") {
		return dErrors.New(dErrors.CodeInvalidInput, "household head email is malformed")
	}

	if h.CivilStatus == CivilStatusMarried && p.Spouse == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "spouse details are required for a married household head")
	}
	if h.CivilStatus != CivilStatusMarried && p.Spouse != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "spouse details are only allowed for a married household head")
	}

	children, others := 0, 0
	for _, m := range p.Composition {
		if m.FirstName == "" || m.LastName == "" || m.Relation == "" {
			return dErrors.New(dErrors.CodeInvalidInput, "every household member needs a name and a relation")
		}
		if m.Relation == RelationSon || m.Relation == RelationDaughter {
			children++
		} else {
			others++
		}
	}
	if children != p.Census.ChildrenCount {
		return dErrors.Newf(dErrors.CodeInvalidInput,
			"children count %d does not match the %d son/daughter entries", p.Census.ChildrenCount, children)
	}
	if others != p.Census.HouseholdMembers {
		return dErrors.Newf(dErrors.CodeInvalidInput,
			"household member count %d does not match the %d non-child entries", p.Census.HouseholdMembers, others)
	}

	if p.Census.RegisteredVoter == "Yes" && p.Census.VoterPrecinctNo == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "voter precinct number is required for registered voters")
	}
	if p.Census.RegisteredVoter != "Yes" && p.Census.VoterPrecinctNo != "" {
		return dErrors.New(dErrors.CodeInvalidInput, "voter precinct number is only allowed for registered voters")
	}
	if p.Census.Renting && p.Census.OwnsHouse {
		return dErrors.New(dErrors.CodeInvalidInput, "renting and owning the house are mutually exclusive")
	}
	return nil
}

// FileRefs returns every storage path referenced by the profile. Used to
// enforce upload-then-link ordering before an upsert.
func (p *ResidentProfile) FileRefs() []string {
	var refs []string
	if p.HouseholdHead.PhotoPath != "" {
		refs = append(refs, p.HouseholdHead.PhotoPath)
	}
	if p.Spouse != nil && p.Spouse.IDScanPath != "" {
		refs = append(refs, p.Spouse.IDScanPath)
	}
	return refs
}

// UnknownHouseholdHead is the fallback used when a stored household field
// cannot be parsed. Listing must keep working with one corrupt record.
func UnknownHouseholdHead() HouseholdHead {
	return HouseholdHead{
		FirstName:   "Unknown",
		LastName:    "Unknown",
		CivilStatus: "Unknown",
		Nationality: "Unknown",
	}
}

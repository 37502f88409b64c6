// Package domain defines typed identifiers shared across verticals.
//
// IDs are distinct UUID wrapper types so the compiler rejects cross-entity
// mixups (passing an OfficialID where a ResidentID is expected).
//
// Invariant: IDs must be valid, non-empty, non-nil UUIDs. Construct via the
// Parse functions at trust boundaries; direct casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "balangay/pkg/domain-errors"
)

// ResidentID identifies a resident account and, one-to-one, their household
// profile and status record.
type ResidentID uuid.UUID

// OfficialID identifies a transparency roster entry.
type OfficialID uuid.UUID

// ParseResidentID constructs a ResidentID from external input.
//
// Errors: returns CodeInvalidInput when the value is empty, malformed, or the
// nil UUID; no other errors are expected.
func ParseResidentID(s string) (ResidentID, error) {
	u, err := parseUUID(s, "resident id")
	return ResidentID(u), err
}

// ParseOfficialID constructs an OfficialID from external input.
func ParseOfficialID(s string) (OfficialID, error) {
	u, err := parseUUID(s, "official id")
	return OfficialID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be the nil UUID")
	}
	return u, nil
}

// NewResidentID returns a fresh random ResidentID.
func NewResidentID() ResidentID { return ResidentID(uuid.New()) }

// NewOfficialID returns a fresh random OfficialID.
func NewOfficialID() OfficialID { return OfficialID(uuid.New()) }

// IsNil reports whether the ID is the zero UUID.
func (id ResidentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// String returns the canonical UUID string.
func (id ResidentID) String() string { return uuid.UUID(id).String() }

// MarshalText renders the ID as the canonical UUID string in JSON.
func (id ResidentID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses and validates an ID from JSON.
func (id *ResidentID) UnmarshalText(b []byte) error {
	parsed, err := ParseResidentID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// IsNil reports whether the ID is the zero UUID.
func (id OfficialID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// String returns the canonical UUID string.
func (id OfficialID) String() string { return uuid.UUID(id).String() }

// MarshalText renders the ID as the canonical UUID string in JSON.
func (id OfficialID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses and validates an ID from JSON.
func (id *OfficialID) UnmarshalText(b []byte) error {
	parsed, err := ParseOfficialID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Package domain holds shared domain primitives: typed identifiers used
// across modules so a tenant ID can never be passed where a user ID is
// expected.
package domain

import "github.com/google/uuid"

// TenantID identifies a clinic tenant.
type TenantID uuid.UUID

// UserID identifies a staff user within a tenant.
type UserID uuid.UUID

// NewTenantID generates a random tenant ID.
func NewTenantID() TenantID {
	return TenantID(uuid.New())
}

// ParseTenantID parses the canonical UUID string form.
func ParseTenantID(s string) (TenantID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return TenantID{}, err
	}
	return TenantID(u), nil
}

func (t TenantID) String() string {
	return uuid.UUID(t).String()
}

// IsNil reports whether the ID is the zero UUID.
func (t TenantID) IsNil() bool {
	return uuid.UUID(t) == uuid.Nil
}

// MarshalText renders the ID in canonical UUID form for JSON.
func (t TenantID) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TenantID) UnmarshalText(data []byte) error {
	parsed, err := ParseTenantID(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// NewUserID generates a random user ID.
func NewUserID() UserID {
	return UserID(uuid.New())
}

// ParseUserID parses the canonical UUID string form.
func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(u), nil
}

func (u UserID) String() string {
	return uuid.UUID(u).String()
}

// IsNil reports whether the ID is the zero UUID.
func (u UserID) IsNil() bool {
	return uuid.UUID(u) == uuid.Nil
}

// MarshalText renders the ID in canonical UUID form for JSON.
func (u UserID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *UserID) UnmarshalText(data []byte) error {
	parsed, err := ParseUserID(string(data))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

package domain

import (
	"strings"
	"time"
)

// Role tags an account with the dashboard it belongs to.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleResident Role = "RESIDENT"
	RoleGuard    Role = "GUARD"
)

// DefaultRole is assigned when signup does not name a role.
const DefaultRole = RoleResident

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleResident, RoleGuard}

// ParseRole maps a role tag to a Role, ignoring case and surrounding
// whitespace. An empty tag yields DefaultRole.
func ParseRole(s string) (Role, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultRole, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleResident, RoleGuard:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// RoleSet is the set of roles allowed to reach a resource.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Has reports whether r is a member of the set.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// Account is a credentialed user of the society.
type Account struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Username       string     `json:"username"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Role           Role       `json:"role"`
	PasswordHash   string     `json:"-"`
	Phone          string     `json:"phone,omitempty"`
	ProfileImage   string     `json:"profile_image,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	ActiveResident bool       `json:"is_active_resident"`
	DateJoined     time.Time  `json:"date_joined"`
	LastLoginAt    *time.Time `json:"last_login,omitempty"`
}

// NormalizeEmail is the canonical form used as the authentication key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailLocalPart returns the part of email before the last '@'.
func EmailLocalPart(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

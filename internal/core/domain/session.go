package domain

import "time"

// Session binds an opaque token to exactly one authenticated account.
// Role is cached at login so authorization needs no account lookup.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"`
	AccountID string    `json:"account_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DashboardTarget is the landing path a session is sent to after login.
type DashboardTarget string

const (
	DashboardAdmin    DashboardTarget = "/admin/"
	DashboardResident DashboardTarget = "/resident/"
	DashboardGuard    DashboardTarget = "/guard/"
	// DashboardLanding is the neutral page for sessions without a known role.
	DashboardLanding DashboardTarget = "/"
)

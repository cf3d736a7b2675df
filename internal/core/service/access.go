package service

import (
	"strings"

	"github.com/esociety/society-api/internal/core/domain"
)

var dashboards = map[domain.Role]domain.DashboardTarget{
	domain.RoleAdmin:    domain.DashboardAdmin,
	domain.RoleResident: domain.DashboardResident,
	domain.RoleGuard:    domain.DashboardGuard,
}

// RouteAfterLogin returns the dashboard for the session's role. A nil
// session or an unrecognised role lands on domain.DashboardLanding.
func RouteAfterLogin(session *domain.Session) domain.DashboardTarget {
	if session == nil {
		return domain.DashboardLanding
	}
	if target, ok := dashboards[session.Role]; ok {
		return target
	}
	return domain.DashboardLanding
}

// Authorize decides whether session may reach a resource guarded by
// required. It returns nil when allowed, domain.ErrUnauthenticated without
// a session and domain.ErrDenied on a role mismatch.
func Authorize(session *domain.Session, required domain.RoleSet) error {
	if session == nil {
		return domain.ErrUnauthenticated
	}
	if !required.Has(session.Role) {
		return domain.ErrDenied
	}
	return nil
}

// Policy maps a route prefix to the roles allowed under it.
type Policy map[string]domain.RoleSet

// DefaultPolicy is the route table for the society API.
func DefaultPolicy() Policy {
	everyone := domain.NewRoleSet(domain.Roles...)
	return Policy{
		"/admin":     domain.NewRoleSet(domain.RoleAdmin),
		"/resident":  domain.NewRoleSet(domain.RoleResident),
		"/guard":     domain.NewRoleSet(domain.RoleGuard),
		"/notices":   everyone,
		"/amenities": everyone,
	}
}

// Required returns the role set of the longest prefix matching path.
// Prefixes match on whole path segments: "/admin" covers "/admin" and
// "/admin/units" but not "/administrator".
func (p Policy) Required(path string) (domain.RoleSet, bool) {
	var (
		best    string
		roles   domain.RoleSet
		matched bool
	)
	for prefix, set := range p {
		if !matchesPrefix(path, prefix) || (matched && len(prefix) <= len(best)) {
			continue
		}
		best, roles, matched = prefix, set, true
	}
	return roles, matched
}

func matchesPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/' || strings.HasSuffix(prefix, "/")
}

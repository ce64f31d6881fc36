package identity

import (
	"time"

	"github.com/accessgate/accessgate/internal/authz"
)

// Principal is the authenticated actor's resolved identity and grants. It is
// constructed fresh on every credential decode and replaced wholesale when the
// credential changes; nothing mutates it afterwards.
type Principal struct {
	ID          string
	Email       string
	DisplayName string

	// Roles currently granted, in token order. May be empty.
	Roles []string

	// Permissions is the sparse set of grants; records may carry wildcard
	// resource or action.
	Permissions []authz.Permission

	// AccessibleBusinessUnits holds the business-unit ids or slugs the
	// principal may operate within.
	AccessibleBusinessUnits []string

	// ExpiresAt is the raw expiry instant from the credential; zero when the
	// credential carries none. Enforcement belongs to the access guard, not
	// the decoder.
	ExpiresAt time.Time
}

// Expired reports whether the principal's credential expiry is at or before
// the given instant. A zero ExpiresAt never expires.
func (p *Principal) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && !p.ExpiresAt.After(now)
}

// HasBusinessUnit reports whether the principal may operate within the given
// business unit.
func (p *Principal) HasBusinessUnit(bu string) bool {
	for _, b := range p.AccessibleBusinessUnits {
		if b == bu {
			return true
		}
	}
	return false
}

// HasRole reports whether the principal holds the role, compared after
// normalization.
func (p *Principal) HasRole(role string) bool {
	want := authz.NormalizeRole(role)
	for _, r := range p.Roles {
		if authz.NormalizeRole(r) == want {
			return true
		}
	}
	return false
}

// Allowed reports whether the principal satisfies the requirement.
func (p *Principal) Allowed(req authz.Requirement) bool {
	return authz.IsAllowed(p.Roles, p.Permissions, req)
}

// AllowedAny reports whether the principal satisfies at least one requirement.
func (p *Principal) AllowedAny(reqs ...authz.Requirement) bool {
	return authz.IsAllowedAny(p.Roles, p.Permissions, reqs)
}

// AllowedAll reports whether the principal satisfies every requirement.
func (p *Principal) AllowedAll(reqs ...authz.Requirement) bool {
	return authz.IsAllowedAll(p.Roles, p.Permissions, reqs)
}

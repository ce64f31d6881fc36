// Copyright 2026 The Accessgate Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tenant derives the current role and business unit from URL path
// segments and checks them against a principal's grants.
package tenant

import (
	"context"
	"strings"

	"github.com/accessgate/accessgate/internal/authz"
	"github.com/accessgate/accessgate/internal/identity"
)

// Platform-wide area literals. A path starting with one of these carries a
// role context but never a business unit.
var platformLiterals = map[string]struct{}{
	"global":       {},
	"super-admin":  {},
	"organization": {},
}

// Convention selects which tenancy segment order the binder tries first when
// both segments are ambiguous. The console historically shipped route groups
// in both orders, so detection is vocabulary-driven and the convention only
// breaks ties.
type Convention int

const (
	// RoleFirst expects /{role}/{businessUnit}/... (the default).
	RoleFirst Convention = iota
	// BusinessUnitFirst expects /{businessUnit}/{role}/...
	BusinessUnitFirst
)

// MembershipSource supplies accessible business units for principals whose
// credential carries none. Optional.
type MembershipSource interface {
	AccessibleBusinessUnits(ctx context.Context, userID string) ([]string, error)
}

// Binding is the result of matching a path's tenancy segments against a
// principal.
type Binding struct {
	// RoleFromPath is the normalized role segment, empty when the path
	// carries none.
	RoleFromPath string
	// BusinessUnitFromPath is the business-unit segment, empty when the path
	// carries none.
	BusinessUnitFromPath string
	// RoleAccessOK is true when no role is required or the principal holds it.
	RoleAccessOK bool
	// TenantAccessOK is true when no business unit is in context, the
	// principal is super-admin-equivalent, or the principal may operate in it.
	TenantAccessOK bool
	// Relative is the feature path with the tenancy segments stripped, for
	// route-permission resolution.
	Relative string
}

// Binder extracts tenancy context from paths. The zero value uses the
// RoleFirst convention with no membership fallback.
type Binder struct {
	convention Convention
	membership MembershipSource
}

// Option configures a Binder.
type Option func(*Binder)

// WithConvention sets the tie-breaking segment order.
func WithConvention(c Convention) Option {
	return func(b *Binder) { b.convention = c }
}

// WithMembershipSource installs a fallback source of accessible business
// units, consulted only when the credential carries none.
func WithMembershipSource(src MembershipSource) Option {
	return func(b *Binder) { b.membership = src }
}

// NewBinder creates a Binder.
func NewBinder(opts ...Option) *Binder {
	b := &Binder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bind matches the path segments against the principal.
//
// Segment roles are detected by vocabulary: a segment that normalizes to a
// known role name is a role, otherwise it is a business-unit candidate. The
// configured convention decides only the ambiguous case where both leading
// segments (or neither) look like roles.
func (b *Binder) Bind(ctx context.Context, segments []string, p *identity.Principal) Binding {
	role, bu, rest := b.split(segments, p)

	binding := Binding{
		RoleFromPath:         role,
		BusinessUnitFromPath: bu,
		Relative:             "/" + strings.Join(rest, "/"),
	}

	binding.RoleAccessOK = role == "" || p.HasRole(role)

	switch {
	case bu == "":
		binding.TenantAccessOK = true
	case authz.IsSuperAdmin(p.Roles...):
		binding.TenantAccessOK = true
	case p.HasBusinessUnit(bu):
		binding.TenantAccessOK = true
	case len(p.AccessibleBusinessUnits) == 0 && b.membership != nil && p.ID != "":
		units, err := b.membership.AccessibleBusinessUnits(ctx, p.ID)
		if err == nil {
			for _, u := range units {
				if u == bu {
					binding.TenantAccessOK = true
					break
				}
			}
		}
	}

	return binding
}

// split classifies the leading segments into (role, businessUnit, rest).
// A segment counts as a role when it is in the static vocabulary or among the
// principal's own roles; credential-granted roles cover custom role names the
// vocabulary has never heard of.
func (b *Binder) split(segments []string, p *identity.Principal) (string, string, []string) {
	segments = compact(segments)
	if len(segments) == 0 {
		return "", "", nil
	}

	looksLikeRole := func(seg string) bool {
		return authz.KnownRole(seg) || p.HasRole(seg)
	}

	first := authz.NormalizeRole(segments[0])
	if _, ok := platformLiterals[first]; ok {
		return first, "", segments[1:]
	}

	if len(segments) == 1 {
		if looksLikeRole(first) {
			return first, "", nil
		}
		return "", "", segments
	}

	second := authz.NormalizeRole(segments[1])
	firstIsRole := looksLikeRole(first)
	secondIsRole := looksLikeRole(second)

	switch {
	case firstIsRole && !secondIsRole:
		return first, segments[1], segments[2:]
	case !firstIsRole && secondIsRole:
		return second, segments[0], segments[2:]
	case firstIsRole && secondIsRole:
		// Both look like roles; fall back to the configured convention.
		if b.convention == BusinessUnitFirst {
			return second, segments[0], segments[2:]
		}
		return first, segments[1], segments[2:]
	default:
		// Neither segment is a known role: the path is not tenancy-prefixed.
		return "", "", segments
	}
}

// Segments splits a path into its non-empty slash-delimited segments.
func Segments(path string) []string {
	return compact(strings.Split(path, "/"))
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

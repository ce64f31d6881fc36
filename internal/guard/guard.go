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

// Package guard aggregates credential decoding, tenancy binding, route
// resolution and permission evaluation into one decision per navigation.
//
// Check is a pure function of its two inputs (path, credential) apart from
// the clock; concurrent invocations are independent and nothing is retried. A
// denial is a decision, not a fault: no error ever escapes the guard.
package guard

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/accessgate/accessgate/internal/audit"
	"github.com/accessgate/accessgate/internal/authz"
	"github.com/accessgate/accessgate/internal/identity"
	"github.com/accessgate/accessgate/internal/observability/logger"
	"github.com/accessgate/accessgate/internal/observability/metrics"
	"github.com/accessgate/accessgate/internal/routes"
	"github.com/accessgate/accessgate/internal/tenant"
)

// Outcome is the categorical result of one navigation check.
type Outcome string

const (
	Allowed         Outcome = "allowed"
	Unauthenticated Outcome = "unauthenticated"
	TenantMismatch  Outcome = "tenant_mismatch"
	RoleMismatch    Outcome = "role_mismatch"
	Forbidden       Outcome = "forbidden"
)

// Reason tags carried by a decision for redirect and messaging purposes.
const (
	ReasonNotAuthenticated    = "not_authenticated"
	ReasonMalformedCredential = "malformed_credential"
	ReasonSessionExpired      = "session_expired"
	ReasonTenantNotAccessible = "business_unit_not_accessible"
	ReasonRoleNotGranted      = "role_not_granted"
	ReasonMissingPermission   = "missing_permission"
	ReasonUndeclaredRoute     = "undeclared_route"
	ReasonModuleDisabled      = "module_disabled"
)

// Decision is the transient outcome of one navigation attempt. It carries
// enough context to render an unauthorized view or a redirect; it is never
// persisted.
type Decision struct {
	Outcome      Outcome             `json:"outcome"`
	Reason       string              `json:"reason,omitempty"`
	Path         string              `json:"path"`
	Relative     string              `json:"relative_path,omitempty"`
	Role         string              `json:"role,omitempty"`
	BusinessUnit string              `json:"business_unit,omitempty"`
	Required     *authz.Requirement  `json:"required,omitempty"`
	Principal    *identity.Principal `json:"-"`
}

// Denied reports whether the decision blocks the navigation.
func (d Decision) Denied() bool {
	return d.Outcome != Allowed
}

// ModuleSource reports which toggleable modules a business unit has enabled.
// Optional; when absent no module gating happens.
type ModuleSource interface {
	EnabledModules(ctx context.Context, businessUnit string) ([]string, error)
}

// Guard is the per-navigation access checker. Build once; safe for concurrent
// use, its lookup tables are immutable.
type Guard struct {
	table     *routes.Table
	binder    *tenant.Binder
	universal map[string]struct{}
	modules   ModuleSource
	auditor   audit.Logger
	now       func() time.Time

	// resourceModules is the reverse of authz.ModuleResources, derived once.
	resourceModules map[string][]string

	decisions metric.Int64Counter
	latency   metric.Float64Histogram
}

// Option configures a Guard.
type Option func(*Guard)

// WithModuleSource enables module gating against the given source.
func WithModuleSource(src ModuleSource) Option {
	return func(g *Guard) { g.modules = src }
}

// WithAuditLogger records every decision with the given audit logger.
func WithAuditLogger(l audit.Logger) Option {
	return func(g *Guard) { g.auditor = l }
}

// WithMeter registers decision metrics on the given meter.
func WithMeter(m *metrics.Meter) Option {
	return func(g *Guard) {
		if m == nil {
			return
		}
		if c, err := m.CreateCounter("accessgate.decisions", "access decisions by outcome"); err == nil {
			g.decisions = c
		}
		if h, err := m.CreateHistogram("accessgate.check.duration", "access check duration", "ms"); err == nil {
			g.latency = h
		}
	}
}

// WithClock overrides the expiry clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// WithUniversalPaths overrides the relative paths that bypass the permission
// table once the principal is authenticated and tenant/role-matched.
func WithUniversalPaths(paths []string) Option {
	return func(g *Guard) {
		g.universal = make(map[string]struct{}, len(paths))
		for _, p := range paths {
			g.universal[routes.Normalize(p)] = struct{}{}
		}
	}
}

// New creates a Guard over the given route-permission table and binder.
func New(table *routes.Table, binder *tenant.Binder, opts ...Option) *Guard {
	g := &Guard{
		table:           table,
		binder:          binder,
		now:             time.Now,
		resourceModules: reverseModuleMap(),
	}
	WithUniversalPaths(routes.UniversalPaths)(g)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check decides whether the credential may navigate to the path.
//
// Order: decode, expiry, tenant membership, role membership, route-permission
// resolution on the relative path, then permission evaluation. Undeclared
// routes deny by default; the universal dashboard paths always allow once the
// principal is authenticated and tenant/role-matched.
func (g *Guard) Check(ctx context.Context, path, credential string) Decision {
	start := g.now()
	decision := g.check(ctx, path, credential)
	g.observe(ctx, path, decision, g.now().Sub(start))
	return decision
}

func (g *Guard) check(ctx context.Context, path, credential string) Decision {
	decision := Decision{Path: routes.Normalize(path)}

	if credential == "" {
		decision.Outcome = Unauthenticated
		decision.Reason = ReasonNotAuthenticated
		return decision
	}

	principal, err := identity.Decode(credential)
	if err != nil {
		decision.Outcome = Unauthenticated
		decision.Reason = ReasonMalformedCredential
		return decision
	}
	if principal.Expired(g.now()) {
		decision.Outcome = Unauthenticated
		decision.Reason = ReasonSessionExpired
		return decision
	}
	decision.Principal = principal

	binding := g.binder.Bind(ctx, tenant.Segments(decision.Path), principal)
	decision.Role = binding.RoleFromPath
	decision.BusinessUnit = binding.BusinessUnitFromPath
	decision.Relative = routes.Normalize(binding.Relative)

	if !binding.TenantAccessOK {
		decision.Outcome = TenantMismatch
		decision.Reason = ReasonTenantNotAccessible
		return decision
	}
	if !binding.RoleAccessOK {
		decision.Outcome = RoleMismatch
		decision.Reason = ReasonRoleNotGranted
		return decision
	}

	if _, ok := g.universal[decision.Relative]; ok {
		decision.Outcome = Allowed
		return decision
	}

	required := g.table.Resolve(decision.Relative)
	if required == nil {
		decision.Outcome = Forbidden
		decision.Reason = ReasonUndeclaredRoute
		return decision
	}
	decision.Required = required

	if !g.moduleEnabled(ctx, binding.BusinessUnitFromPath, principal, required.Resource) {
		decision.Outcome = Forbidden
		decision.Reason = ReasonModuleDisabled
		return decision
	}

	if !authz.IsAllowed(principal.Roles, principal.Permissions, *required) {
		decision.Outcome = Forbidden
		decision.Reason = ReasonMissingPermission
		return decision
	}

	decision.Outcome = Allowed
	return decision
}

// moduleEnabled checks that at least one module gating the resource is
// enabled for the business unit. Resources no module gates, paths without a
// business unit, and super-admin principals skip the check.
func (g *Guard) moduleEnabled(ctx context.Context, businessUnit string, p *identity.Principal, resource string) bool {
	if g.modules == nil || businessUnit == "" || authz.IsSuperAdmin(p.Roles...) {
		return true
	}
	gating := g.resourceModules[resource]
	if len(gating) == 0 {
		return true
	}
	enabled, err := g.modules.EnabledModules(ctx, businessUnit)
	if err != nil {
		// Module enablement is a narrowing concern; an unavailable source
		// must not widen access either, so fail toward the permission check.
		slog.WarnContext(ctx, "module source unavailable",
			logger.BusinessUnit(businessUnit), logger.Error(err))
		return true
	}
	for _, m := range enabled {
		for _, want := range gating {
			if m == want {
				return true
			}
		}
	}
	return false
}

func (g *Guard) observe(ctx context.Context, path string, d Decision, elapsed time.Duration) {
	if g.decisions != nil {
		g.decisions.Add(ctx, 1, metric.WithAttributes(
			attribute.String("outcome", string(d.Outcome)),
		))
	}
	if g.latency != nil {
		g.latency.Record(ctx, float64(elapsed.Microseconds())/1000.0)
	}
	if g.auditor != nil {
		event := audit.Event{
			Type:         audit.TypeAccessDenied,
			Path:         path,
			BusinessUnit: d.BusinessUnit,
			Metadata:     map[string]any{"outcome": string(d.Outcome), "reason": d.Reason},
		}
		if d.Outcome == Allowed {
			event.Type = audit.TypeAccessAllowed
		}
		if d.Principal != nil {
			event.ActorID = d.Principal.ID
		}
		if d.Required != nil {
			event.Resource = d.Required.Code()
		}
		g.auditor.Log(ctx, event)
	}
}

func reverseModuleMap() map[string][]string {
	out := make(map[string][]string)
	for module, resources := range authz.ModuleResources {
		for _, r := range resources {
			out[r] = append(out[r], module)
		}
	}
	return out
}

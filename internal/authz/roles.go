package authz

// Canonical role names. Stored role strings may drift in case and separator
// style; compare only after NormalizeRole.
const (
	RoleSuperAdmin        = "super-admin"
	RoleOrganizationOwner = "organization-owner"
	RoleOrganizationAdmin = "organization-admin"
	RolePlatformSupport   = "platform-support"
	RolePlatformBilling   = "platform-billing"
	RoleAdmin             = "admin"
	RoleBusinessAdmin     = "business-admin"
	RoleBusinessOwner     = "business-owner"
	RoleManager           = "manager"
	RoleOutletManager     = "outlet-manager"
	RoleCashier           = "cashier"
	RoleSalesperson       = "salesperson"
	RoleStockkeeper       = "stockkeeper"
	RoleStaff             = "staff"
)

// RoleScopes classifies each known role by tenancy breadth. Classification
// only: it decides which roles are candidates for a navigation context, never
// grants anything by itself.
var RoleScopes = map[string]Scope{
	RoleSuperAdmin:        ScopeGlobal,
	RolePlatformSupport:   ScopeGlobal,
	RolePlatformBilling:   ScopeGlobal,
	RoleOrganizationOwner: ScopeOrganization,
	RoleOrganizationAdmin: ScopeOrganization,
	RoleAdmin:             ScopeBusiness,
	RoleBusinessAdmin:     ScopeBusiness,
	RoleBusinessOwner:     ScopeBusiness,
	RoleManager:           ScopeBusiness,
	RoleOutletManager:     ScopeOutlet,
	RoleCashier:           ScopeOutlet,
	RoleSalesperson:       ScopeOutlet,
	RoleStockkeeper:       ScopeOutlet,
	RoleStaff:             ScopeOutlet,
}

// KnownRole reports whether the (normalized) name belongs to the role
// vocabulary. Used by the tenant binder to tell role segments apart from
// business-unit segments.
func KnownRole(name string) bool {
	_, ok := RoleScopes[NormalizeRole(name)]
	return ok
}

func matchesAny(roles []string, canonical ...string) bool {
	for _, r := range roles {
		n := NormalizeRole(r)
		for _, c := range canonical {
			if n == c {
				return true
			}
		}
	}
	return false
}

// IsSuperAdmin reports whether any of the given roles is the super-admin role.
func IsSuperAdmin(roles ...string) bool {
	return matchesAny(roles, RoleSuperAdmin)
}

// IsOrganizationOwner reports whether any role is the organization owner.
func IsOrganizationOwner(roles ...string) bool {
	return matchesAny(roles, RoleOrganizationOwner)
}

// IsPlatformLevel reports whether any role operates platform-wide: the
// super-admin plus the fixed set of platform-scope staff roles.
func IsPlatformLevel(roles ...string) bool {
	return matchesAny(roles, RoleSuperAdmin, RolePlatformSupport, RolePlatformBilling)
}

// IsBusinessAdmin reports whether any role administers a business unit.
func IsBusinessAdmin(roles ...string) bool {
	return matchesAny(roles, RoleAdmin, RoleBusinessAdmin, RoleBusinessOwner)
}

// IsManager reports whether any role is a managerial role.
func IsManager(roles ...string) bool {
	return matchesAny(roles, RoleManager, RoleOutletManager)
}

// IsOperationalRole reports whether any role is a frontline operational role.
func IsOperationalRole(roles ...string) bool {
	return matchesAny(roles, RoleCashier, RoleSalesperson, RoleStockkeeper, RoleStaff)
}

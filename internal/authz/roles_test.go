package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/accessgate/accessgate/internal/authz"
)

func TestRoleClassification(t *testing.T) {
	assert.True(t, authz.IsSuperAdmin("Super Admin"))
	assert.False(t, authz.IsSuperAdmin("organization-owner"))

	assert.True(t, authz.IsOrganizationOwner("organization_owner"))
	assert.False(t, authz.IsOrganizationOwner("organization-admin"))

	assert.True(t, authz.IsPlatformLevel("super-admin"))
	assert.True(t, authz.IsPlatformLevel("platform-support"))
	assert.True(t, authz.IsPlatformLevel("Platform_Billing"))
	assert.False(t, authz.IsPlatformLevel("business-admin"))

	assert.True(t, authz.IsBusinessAdmin("admin"))
	assert.True(t, authz.IsBusinessAdmin("business-owner"))
	assert.False(t, authz.IsBusinessAdmin("manager"))

	assert.True(t, authz.IsManager("manager"))
	assert.True(t, authz.IsManager("outlet-manager"))
	assert.False(t, authz.IsManager("cashier"))

	assert.True(t, authz.IsOperationalRole("cashier"))
	assert.True(t, authz.IsOperationalRole("stockkeeper"))
	assert.False(t, authz.IsOperationalRole("super-admin"))
}

func TestRoleClassification_RoleLists(t *testing.T) {
	roles := []string{"cashier", "Super_Admin"}
	assert.True(t, authz.IsSuperAdmin(roles...))
	assert.True(t, authz.IsOperationalRole(roles...))
	assert.False(t, authz.IsManager(roles...))

	assert.False(t, authz.IsSuperAdmin())
}

func TestKnownRole(t *testing.T) {
	assert.True(t, authz.KnownRole("admin"))
	assert.True(t, authz.KnownRole("Outlet Manager"))
	assert.False(t, authz.KnownRole("bu-1"))
	assert.False(t, authz.KnownRole(""))
}

// Scope is a classification label only: every known role has exactly one
// scope and no scope implies another.
func TestRoleScopes(t *testing.T) {
	assert.Equal(t, authz.ScopeGlobal, authz.RoleScopes[authz.RoleSuperAdmin])
	assert.Equal(t, authz.ScopeOrganization, authz.RoleScopes[authz.RoleOrganizationOwner])
	assert.Equal(t, authz.ScopeBusiness, authz.RoleScopes[authz.RoleBusinessAdmin])
	assert.Equal(t, authz.ScopeOutlet, authz.RoleScopes[authz.RoleCashier])
}

package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/accessgate/accessgate/internal/authz"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces", "Super Admin", "super-admin"},
		{"underscores", "super_admin", "super-admin"},
		{"already normalized", "super-admin", "super-admin"},
		{"mixed separators", "  Business__Unit  Admin ", "business-unit-admin"},
		{"collapsed runs", "a  _  b", "a-b"},
		{"empty", "", ""},
		{"only separators", " _ - ", ""},
		{"uppercase", "MANAGER", "manager"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authz.NormalizeRole(tt.in))
		})
	}
}

// Normalization must be idempotent: case and separator drift between the UI
// layer and stored role strings is the failure mode the whole subsystem is
// designed against.
func TestNormalizeRole_Idempotent(t *testing.T) {
	inputs := []string{
		"Super Admin", "super_admin", "super-admin", "ORGANIZATION  OWNER",
		"cashier", "Outlet_Manager", "", "x", "a b c_d-e",
	}
	for _, in := range inputs {
		once := authz.NormalizeRole(in)
		assert.Equal(t, once, authz.NormalizeRole(once), "input %q", in)
	}
}

func TestNormalizeRole_EquivalentSpellings(t *testing.T) {
	assert.Equal(t, authz.NormalizeRole("Super Admin"), authz.NormalizeRole("super_admin"))
	assert.Equal(t, authz.NormalizeRole("super_admin"), authz.NormalizeRole("super-admin"))
	assert.Equal(t, "super-admin", authz.NormalizeRole("Super Admin"))
}

func TestParsePermissionCode(t *testing.T) {
	perm, ok := authz.ParsePermissionCode("product:update")
	assert.True(t, ok)
	assert.Equal(t, "product", perm.Resource)
	assert.Equal(t, "update", perm.Action)

	perm, ok = authz.ParsePermissionCode("Product:VIEW")
	assert.True(t, ok)
	assert.Equal(t, "product", perm.Resource)
	assert.Equal(t, "view", perm.Action)

	_, ok = authz.ParsePermissionCode("no-separator")
	assert.False(t, ok)

	_, ok = authz.ParsePermissionCode(":view")
	assert.False(t, ok)

	_, ok = authz.ParsePermissionCode("product:")
	assert.False(t, ok)
}

func TestModuleResources(t *testing.T) {
	erp := authz.ModuleResources["erp"]
	assert.Contains(t, erp, authz.ResourcePurchase)
	assert.Contains(t, erp, authz.ResourceSupplier)

	// Every module maps only to known resource keys.
	known := make(map[string]struct{}, len(authz.Resources))
	for _, r := range authz.Resources {
		known[r] = struct{}{}
	}
	for module, resources := range authz.ModuleResources {
		for _, r := range resources {
			_, ok := known[r]
			assert.True(t, ok, "module %s references unknown resource %s", module, r)
		}
	}
}

func TestRequirementCode(t *testing.T) {
	req := authz.Requirement{Resource: "Product", Action: "View"}
	assert.Equal(t, "product:view", req.Code())
}

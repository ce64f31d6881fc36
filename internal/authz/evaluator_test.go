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

package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/accessgate/accessgate/internal/authz"
)

func TestIsAllowed(t *testing.T) {
	productView := authz.Requirement{Resource: "product", Action: "view"}
	orderShip := authz.Requirement{Resource: "order", Action: "ship"}

	tests := []struct {
		name     string
		roles    []string
		grants   []authz.Permission
		required authz.Requirement
		expected bool
	}{
		{
			name:     "exact match",
			roles:    []string{"cashier"},
			grants:   []authz.Permission{{Resource: "product", Action: "view"}},
			required: productView,
			expected: true,
		},
		{
			name:     "case-insensitive match",
			roles:    []string{"cashier"},
			grants:   []authz.Permission{{Resource: "Product", Action: "VIEW"}},
			required: productView,
			expected: true,
		},
		{
			name:     "full wildcard allows anything",
			roles:    []string{"manager"},
			grants:   []authz.Permission{{Resource: "*", Action: "*"}},
			required: orderShip,
			expected: true,
		},
		{
			name:     "resource grant with wildcard action",
			roles:    []string{"manager"},
			grants:   []authz.Permission{{Resource: "product", Action: "*"}},
			required: authz.Requirement{Resource: "product", Action: "delete"},
			expected: true,
		},
		{
			name:     "wildcard action does not cross resources",
			roles:    []string{"manager"},
			grants:   []authz.Permission{{Resource: "product", Action: "*"}},
			required: orderShip,
			expected: false,
		},
		{
			name:     "wildcard resource with fixed action",
			roles:    []string{"manager"},
			grants:   []authz.Permission{{Resource: "*", Action: "view"}},
			required: authz.Requirement{Resource: "supplier", Action: "view"},
			expected: true,
		},
		{
			name:     "empty grant list denies",
			roles:    []string{"cashier"},
			grants:   nil,
			required: productView,
			expected: false,
		},
		{
			name:     "no matching record denies",
			roles:    []string{"cashier"},
			grants:   []authz.Permission{{Resource: "order", Action: "view"}},
			required: productView,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, authz.IsAllowed(tt.roles, tt.grants, tt.required))
		})
	}
}

// A super-admin-equivalent role bypasses the grant list entirely, whatever
// its contents, however the role name is spelled.
func TestIsAllowed_SuperAdminBypass(t *testing.T) {
	required := authz.Requirement{Resource: "system", Action: "manage"}

	for _, spelling := range []string{"super-admin", "Super Admin", "SUPER_ADMIN"} {
		assert.True(t, authz.IsAllowed([]string{spelling}, nil, required), "spelling %q", spelling)
	}

	// Bypass applies even when the grant list explicitly lacks the permission.
	grants := []authz.Permission{{Resource: "product", Action: "view"}}
	assert.True(t, authz.IsAllowed([]string{"cashier", "super_admin"}, grants, required))

	// Non-super roles get no bypass.
	assert.False(t, authz.IsAllowed([]string{"business-admin"}, grants, required))
}

func TestIsAllowedAnyAll(t *testing.T) {
	roles := []string{"manager"}
	grants := []authz.Permission{
		{Resource: "product", Action: "view"},
		{Resource: "order", Action: "*"},
	}
	productView := authz.Requirement{Resource: "product", Action: "view"}
	orderShip := authz.Requirement{Resource: "order", Action: "ship"}
	staffManage := authz.Requirement{Resource: "staff", Action: "manage"}

	assert.True(t, authz.IsAllowedAny(roles, grants, []authz.Requirement{staffManage, orderShip}))
	assert.False(t, authz.IsAllowedAny(roles, grants, []authz.Requirement{staffManage}))
	assert.True(t, authz.IsAllowedAny(roles, grants, nil))

	assert.True(t, authz.IsAllowedAll(roles, grants, []authz.Requirement{productView, orderShip}))
	assert.False(t, authz.IsAllowedAll(roles, grants, []authz.Requirement{productView, staffManage}))
	assert.True(t, authz.IsAllowedAll(roles, grants, nil))
}

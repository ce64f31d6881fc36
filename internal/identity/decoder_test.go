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

package identity_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accessgate/accessgate/internal/authz"
	"github.com/accessgate/accessgate/internal/identity"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestDecode(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	credential := signToken(t, jwt.MapClaims{
		"id":    "user-1",
		"email": "owner@example.com",
		"name":  "Owner",
		"roles": []any{"Business Admin", "cashier"},
		"permissions": []any{
			map[string]any{"resource": "Product", "action": "VIEW", "scope": "business"},
			"order:create",
		},
		"accessibleBusinessUnits": []any{"bu-1", "bu-2"},
		"exp":                     exp.Unix(),
	})

	p, err := identity.Decode(credential)
	require.NoError(t, err)

	assert.Equal(t, "user-1", p.ID)
	assert.Equal(t, "owner@example.com", p.Email)
	assert.Equal(t, "Owner", p.DisplayName)
	assert.Equal(t, []string{"Business Admin", "cashier"}, p.Roles)
	assert.Equal(t, []string{"bu-1", "bu-2"}, p.AccessibleBusinessUnits)
	assert.Equal(t, []authz.Permission{
		{Resource: "product", Action: "view", Scope: "business"},
		{Resource: "order", Action: "create"},
	}, p.Permissions)
	assert.True(t, p.ExpiresAt.Equal(exp))
}

func TestDecode_IdentityAliases(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		wantID string
	}{
		{"id wins", jwt.MapClaims{"id": "a", "userId": "b", "sub": "c"}, "a"},
		{"userId fallback", jwt.MapClaims{"userId": "b", "sub": "c"}, "b"},
		{"sub fallback", jwt.MapClaims{"sub": "c"}, "c"},
		{"empty id is skipped", jwt.MapClaims{"id": "", "sub": "c"}, "c"},
		{"none present", jwt.MapClaims{"email": "x@example.com"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := identity.Decode(signToken(t, tt.claims))
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, p.ID)
		})
	}
}

func TestDecode_BusinessUnitsSnakeCaseAlias(t *testing.T) {
	p, err := identity.Decode(signToken(t, jwt.MapClaims{
		"sub":            "user-1",
		"business_units": []any{"bu-9"},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"bu-9"}, p.AccessibleBusinessUnits)
}

// Absent optional claims decode to empty fields, not errors. A credential with
// no exp claim yields a zero expiry, which never counts as expired.
func TestDecode_SparseClaims(t *testing.T) {
	p, err := identity.Decode(signToken(t, jwt.MapClaims{"sub": "user-1"}))
	require.NoError(t, err)

	assert.Empty(t, p.Roles)
	assert.Empty(t, p.Permissions)
	assert.Empty(t, p.AccessibleBusinessUnits)
	assert.True(t, p.ExpiresAt.IsZero())
	assert.False(t, p.Expired(time.Now().Add(100*365*24*time.Hour)))
}

func TestDecode_MalformedPermissionRecordsDropped(t *testing.T) {
	p, err := identity.Decode(signToken(t, jwt.MapClaims{
		"sub": "user-1",
		"permissions": []any{
			map[string]any{"resource": "product"}, // missing action
			"not-a-code",
			42,
			"product:view",
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, []authz.Permission{{Resource: "product", Action: "view"}}, p.Permissions)
}

func TestDecode_Malformed(t *testing.T) {
	for _, credential := range []string{"", "   ", "not-a-token", "a.b", "!!!.???.###"} {
		_, err := identity.Decode(credential)
		assert.ErrorIs(t, err, identity.ErrMalformed, "credential %q", credential)
	}
}

func TestPrincipalExpired(t *testing.T) {
	now := time.Now()
	p := &identity.Principal{ExpiresAt: now}
	assert.True(t, p.Expired(now))
	assert.True(t, p.Expired(now.Add(time.Second)))
	assert.False(t, p.Expired(now.Add(-time.Second)))
}

func TestPrincipalHasRole(t *testing.T) {
	p := &identity.Principal{Roles: []string{"Business Admin"}}
	assert.True(t, p.HasRole("business-admin"))
	assert.True(t, p.HasRole("business_admin"))
	assert.False(t, p.HasRole("manager"))
}

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

package identity

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/accessgate/accessgate/internal/authz"
)

// ErrMalformed indicates the credential payload could not be parsed at all.
var ErrMalformed = errors.New("identity: malformed credential")

// Decode extracts a Principal from an opaque bearer credential.
//
// Only the payload structure is read; signature and issuer verification are
// the token issuer's concern and happen upstream. Field mapping is defensive:
// the identity claim may arrive as "id", "userId" or "sub", and the
// permissions and business-unit claims may be absent entirely.
//
// Expiry is extracted raw and NOT enforced here; the access guard owns the
// expiry check.
func Decode(credential string) (*Principal, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, ErrMalformed
	}

	token, _, err := jwt.NewParser().ParseUnverified(credential, jwt.MapClaims{})
	if err != nil {
		return nil, ErrMalformed
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformed
	}

	p := &Principal{
		ID:          firstString(claims, "id", "userId", "sub"),
		Email:       firstString(claims, "email"),
		DisplayName: firstString(claims, "name", "displayName"),
		Roles:       stringSlice(claims["roles"]),
	}

	p.Permissions = permissionSlice(claims["permissions"])

	bus := claims["accessibleBusinessUnits"]
	if bus == nil {
		bus = claims["business_units"]
	}
	p.AccessibleBusinessUnits = stringSlice(bus)

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		p.ExpiresAt = exp.Time
	}

	return p, nil
}

// firstString returns the first claim under any of the aliases that holds a
// non-empty string.
func firstString(claims jwt.MapClaims, aliases ...string) string {
	for _, key := range aliases {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// permissionSlice accepts permission records in either shape the backend
// emits: objects {resource, action, scope} or flat "resource:action" codes.
func permissionSlice(v any) []authz.Permission {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]authz.Permission, 0, len(raw))
	for _, item := range raw {
		switch rec := item.(type) {
		case map[string]any:
			perm := authz.Permission{}
			if s, ok := rec["resource"].(string); ok {
				perm.Resource = strings.ToLower(s)
			}
			if s, ok := rec["action"].(string); ok {
				perm.Action = strings.ToLower(s)
			}
			if s, ok := rec["scope"].(string); ok {
				perm.Scope = strings.ToLower(s)
			}
			if perm.Resource != "" && perm.Action != "" {
				out = append(out, perm)
			}
		case string:
			if perm, ok := authz.ParsePermissionCode(rec); ok {
				out = append(out, perm)
			}
		}
	}
	return out
}

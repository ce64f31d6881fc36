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

package authz

import "strings"

// IsAllowed decides whether a principal holding the given roles and grants
// satisfies the required resource/action pair.
//
// A super-admin role short-circuits to true without inspecting the grant list.
// Otherwise a single grant must match: grant resource equals the required
// resource or is the wildcard, AND grant action equals the required action or
// is the wildcard. Comparison is case-insensitive. An empty grant list denies.
func IsAllowed(roles []string, grants []Permission, required Requirement) bool {
	if IsSuperAdmin(roles...) {
		return true
	}
	resource := strings.ToLower(required.Resource)
	action := strings.ToLower(required.Action)
	for _, g := range grants {
		if !matchesToken(g.Resource, resource) {
			continue
		}
		if matchesToken(g.Action, action) {
			return true
		}
	}
	return false
}

// IsAllowedAny reports whether at least one of the required entries is allowed.
// An empty requirement list is allowed.
func IsAllowedAny(roles []string, grants []Permission, required []Requirement) bool {
	if len(required) == 0 {
		return true
	}
	for _, req := range required {
		if IsAllowed(roles, grants, req) {
			return true
		}
	}
	return false
}

// IsAllowedAll reports whether every required entry is allowed.
func IsAllowedAll(roles []string, grants []Permission, required []Requirement) bool {
	for _, req := range required {
		if !IsAllowed(roles, grants, req) {
			return false
		}
	}
	return true
}

// matchesToken compares a granted token against a required one; the grant may
// be the wildcard.
func matchesToken(granted, required string) bool {
	granted = strings.ToLower(granted)
	return granted == Wildcard || granted == required
}

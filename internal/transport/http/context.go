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

package http

import (
	"context"

	"github.com/accessgate/accessgate/internal/guard"
	"github.com/accessgate/accessgate/internal/identity"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	decisionKey  contextKey = "decision"
)

// GetPrincipal retrieves the authenticated principal from context.
func GetPrincipal(ctx context.Context) *identity.Principal {
	if val, ok := ctx.Value(principalKey).(*identity.Principal); ok {
		return val
	}
	return nil
}

// GetDecision retrieves the access decision the guard made for this request.
func GetDecision(ctx context.Context) (guard.Decision, bool) {
	val, ok := ctx.Value(decisionKey).(guard.Decision)
	return val, ok
}

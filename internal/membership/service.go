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

// Package membership resolves business-unit membership and module
// subscriptions for principals whose credential does not carry them.
package membership

import (
	"context"
	"fmt"
)

// Repository defines the persistence interface for the membership read model.
type Repository interface {
	// BusinessUnitsForUser returns the business units a user may operate in.
	BusinessUnitsForUser(ctx context.Context, userID string) ([]string, error)

	// ModulesForBusinessUnit returns a business unit's subscribed modules.
	ModulesForBusinessUnit(ctx context.Context, businessUnit string) ([]string, error)

	// AddMember records a user's membership in a business unit.
	AddMember(ctx context.Context, userID, businessUnit string) error

	// SetModules replaces a business unit's subscribed modules.
	SetModules(ctx context.Context, businessUnit string, modules []string) error
}

// Service provides membership lookups to the tenant binder and the guard's
// module gating. It satisfies both tenant.MembershipSource and
// guard.ModuleSource.
type Service struct {
	repo Repository
}

// NewService creates a new membership service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AccessibleBusinessUnits returns the business units the user may operate in.
func (s *Service) AccessibleBusinessUnits(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, fmt.Errorf("membership: user id is required")
	}
	units, err := s.repo.BusinessUnitsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve business units: %w", err)
	}
	return units, nil
}

// EnabledModules returns the modules enabled for a business unit.
func (s *Service) EnabledModules(ctx context.Context, businessUnit string) ([]string, error) {
	if businessUnit == "" {
		return nil, fmt.Errorf("membership: business unit is required")
	}
	modules, err := s.repo.ModulesForBusinessUnit(ctx, businessUnit)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve modules: %w", err)
	}
	return modules, nil
}

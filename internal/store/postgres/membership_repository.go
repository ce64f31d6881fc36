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

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/accessgate/accessgate/internal/membership"
)

// MembershipRepository implements membership.Repository over the read model
// the console backend maintains.
type MembershipRepository struct {
	db *DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// BusinessUnitsForUser returns the business units the user is a member of.
func (r *MembershipRepository) BusinessUnitsForUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT business_unit
		FROM business_unit_members
		WHERE user_id = $1
		ORDER BY business_unit
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get business units: %w", err)
	}
	defer rows.Close()

	var units []string
	for rows.Next() {
		var bu string
		if err := rows.Scan(&bu); err != nil {
			return nil, fmt.Errorf("failed to scan business unit: %w", err)
		}
		units = append(units, bu)
	}
	return units, rows.Err()
}

// ModulesForBusinessUnit returns the modules the business unit subscribes to.
func (r *MembershipRepository) ModulesForBusinessUnit(ctx context.Context, businessUnit string) ([]string, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT module
		FROM business_unit_modules
		WHERE business_unit = $1
		ORDER BY module
	`, businessUnit)
	if err != nil {
		return nil, fmt.Errorf("failed to get modules: %w", err)
	}
	defer rows.Close()

	var modules []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

// AddMember records a user's membership in a business unit.
func (r *MembershipRepository) AddMember(ctx context.Context, userID, businessUnit string) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO business_unit_members (user_id, business_unit, granted_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, business_unit) DO NOTHING
	`, userID, businessUnit, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// SetModules replaces a business unit's subscribed modules.
func (r *MembershipRepository) SetModules(ctx context.Context, businessUnit string, modules []string) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM business_unit_modules WHERE business_unit = $1`, businessUnit); err != nil {
		return fmt.Errorf("failed to clear modules: %w", err)
	}
	for _, m := range modules {
		if _, err := tx.Exec(ctx, `
			INSERT INTO business_unit_modules (business_unit, module)
			VALUES ($1, $2)
		`, businessUnit, m); err != nil {
			return fmt.Errorf("failed to set module %s: %w", m, err)
		}
	}
	return tx.Commit(ctx)
}

var _ membership.Repository = (*MembershipRepository)(nil)

// Copyright 2026 The TaskEase Authors
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
)

// TenantRepository implements tenant.Repository. Tenants are the registered
// usernames; a partition exists once it holds at least one task.
type TenantRepository struct {
	db *DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// ListTenants returns every registered username
func (r *TenantRepository) ListTenants(ctx context.Context) ([]string, error) {
	rows, err := r.db.pool.Query(ctx, `SELECT username FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tenants: %w", err)
	}
	return tenants, nil
}

// ListPartitions returns the tenant's partition names
func (r *TenantRepository) ListPartitions(ctx context.Context, tenant string) ([]string, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT DISTINCT partition FROM tasks WHERE tenant = $1 ORDER BY partition
	`, tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}
	defer rows.Close()

	var partitions []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan partition: %w", err)
		}
		partitions = append(partitions, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read partitions: %w", err)
	}
	return partitions, nil
}

// HasPartition reports whether the partition holds any task
func (r *TenantRepository) HasPartition(ctx context.Context, tenant, partition string) (bool, error) {
	var exists bool
	err := r.db.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM tasks WHERE tenant = $1 AND partition = $2)
	`, tenant, partition).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check partition: %w", err)
	}
	return exists, nil
}

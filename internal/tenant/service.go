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

package tenant

import (
	"context"
	"fmt"
	"time"
)

// Service provides tenant enumeration and partition lookups on top of the
// task store.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new tenant service. now is injectable for tests; nil
// means wall clock.
func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

// CurrentPartition returns the partition name for the current month.
func (s *Service) CurrentPartition() string {
	return PartitionFor(s.now())
}

// ListTenants returns every registered tenant name.
func (s *Service) ListTenants(ctx context.Context) ([]string, error) {
	tenants, err := s.repo.ListTenants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, nil
}

// HasCurrentPartition reports whether the tenant has any task in the current
// month's partition. The reminder scan uses this to skip tenants with nothing
// to visit; historical partitions are never scanned.
func (s *Service) HasCurrentPartition(ctx context.Context, tenant string) (bool, error) {
	return s.repo.HasPartition(ctx, tenant, s.CurrentPartition())
}

// ListPartitions returns the tenant's partition names.
func (s *Service) ListPartitions(ctx context.Context, tenant string) ([]string, error) {
	return s.repo.ListPartitions(ctx, tenant)
}

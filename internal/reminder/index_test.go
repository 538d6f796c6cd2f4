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

package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskease/taskease/internal/task"
)

// memTaskRepo is a concurrency-safe in-memory implementation of
// task.Repository, shared by the index and scheduler tests.
type memTaskRepo struct {
	mu      sync.Mutex
	tasks   map[string]*task.Task
	findErr error
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[string]*task.Task)}
}

func (m *memTaskRepo) put(t *task.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.tasks[t.Tenant+"/"+t.Partition+"/"+t.ID] = &cp
}

func (m *memTaskRepo) get(tenant, partition, id string) *task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[tenant+"/"+partition+"/"+id]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}

func (m *memTaskRepo) Insert(ctx context.Context, t *task.Task) error {
	m.put(t)
	return nil
}

func (m *memTaskRepo) FindByID(ctx context.Context, tenant, partition, id string) (*task.Task, error) {
	t := m.get(tenant, partition, id)
	if t == nil {
		return nil, task.ErrTaskNotFound
	}
	return t, nil
}

func (m *memTaskRepo) FindAll(ctx context.Context, tenant, partition string) ([]*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*task.Task
	for _, t := range m.tasks {
		if t.Tenant == tenant && t.Partition == partition {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTaskRepo) FindByOccurrence(ctx context.Context, tenant, partition, date, tm string) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.Tenant == tenant && t.Partition == partition &&
			t.OccurrenceDate == date && t.OccurrenceTime == tm {
			cp := *t
			return &cp, nil
		}
	}
	return nil, task.ErrTaskNotFound
}

func (m *memTaskRepo) FindDue(ctx context.Context, tenant, partition, date, tm string) ([]*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*task.Task
	for _, t := range m.tasks {
		if t.Tenant == tenant && t.Partition == partition &&
			t.ReminderDate == date && t.ReminderTime == tm && t.DispatchedAt == nil {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTaskRepo) UpdateOne(ctx context.Context, tenant, partition, id string, patch task.Patch) error {
	return task.ErrTaskNotFound
}

func (m *memTaskRepo) SetReminder(ctx context.Context, tenant, partition, id, date, tm string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[tenant+"/"+partition+"/"+id]
	if !ok {
		return task.ErrTaskNotFound
	}
	t.ReminderDate = date
	t.ReminderTime = tm
	t.DispatchedAt = nil
	return nil
}

func (m *memTaskRepo) DeleteOne(ctx context.Context, tenant, partition, id string) error {
	return task.ErrTaskNotFound
}

func (m *memTaskRepo) DeleteMany(ctx context.Context, tenant, partition string) (int64, error) {
	return 0, nil
}

func (m *memTaskRepo) MarkDispatched(ctx context.Context, tenant, partition, id string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[tenant+"/"+partition+"/"+id]
	if !ok {
		return false, task.ErrTaskNotFound
	}
	if t.DispatchedAt != nil {
		return false, nil
	}
	t.DispatchedAt = &at
	return true, nil
}

func TestIndex_Due_MinuteWindow(t *testing.T) {
	repo := newMemTaskRepo()
	repo.put(&task.Task{
		ID: "t1", Tenant: "alice", Partition: "march",
		Text: "pay rent", ReminderDate: "2026-03-20", ReminderTime: "09:00",
	})

	idx := NewIndex(repo)
	ctx := context.Background()

	due, err := idx.Due(ctx, "alice", "march", time.Date(2026, time.March, 20, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "t1", due[0].ID)

	// One minute either side does not match.
	before, err := idx.Due(ctx, "alice", "march", time.Date(2026, time.March, 20, 8, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, before)

	after, err := idx.Due(ctx, "alice", "march", time.Date(2026, time.March, 20, 9, 1, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestIndex_Due_ExcludesDispatched(t *testing.T) {
	repo := newMemTaskRepo()
	repo.put(&task.Task{
		ID: "t1", Tenant: "alice", Partition: "march",
		ReminderDate: "2026-03-20", ReminderTime: "09:00",
	})

	idx := NewIndex(repo)
	ctx := context.Background()
	at := time.Date(2026, time.March, 20, 9, 0, 0, 0, time.UTC)

	done, err := idx.MarkDispatched(ctx, "alice", "march", "t1", at)
	require.NoError(t, err)
	assert.True(t, done)

	due, err := idx.Due(ctx, "alice", "march", at)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestIndex_MarkDispatched_Idempotent(t *testing.T) {
	repo := newMemTaskRepo()
	repo.put(&task.Task{
		ID: "t1", Tenant: "alice", Partition: "march",
		ReminderDate: "2026-03-20", ReminderTime: "09:00",
	})

	idx := NewIndex(repo)
	ctx := context.Background()
	at := time.Date(2026, time.March, 20, 9, 0, 0, 0, time.UTC)

	first, err := idx.MarkDispatched(ctx, "alice", "march", "t1", at)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := idx.MarkDispatched(ctx, "alice", "march", "t1", at)
	require.NoError(t, err)
	assert.False(t, second, "second mark must be a no-op, not an error")
}

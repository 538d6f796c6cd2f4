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

// Package reminder contains the reminder dispatch engine: the due-task index
// and the scheduler loop that drives it.
package reminder

import (
	"context"
	"time"

	"github.com/taskease/taskease/internal/task"
)

// Index looks up tasks whose reminder matches a given minute within one
// tenant and partition, and owns the dispatch-marking contract.
type Index struct {
	repo task.Repository
}

// NewIndex creates an index over the task store.
func NewIndex(repo task.Repository) *Index {
	return &Index{repo: repo}
}

// Due returns the tenant's undispatched tasks whose reminder date and time
// literally equal now truncated to the minute. Matching is strict string
// equality on the stored date and HH:MM forms: a reminder has exactly one
// matching minute-window per day, and a missed window is never retried.
func (i *Index) Due(ctx context.Context, tenant, partition string, now time.Time) ([]*task.Task, error) {
	return i.repo.FindDue(ctx, tenant, partition,
		now.Format(task.DateLayout),
		now.Format(task.TimeLayout),
	)
}

// MarkDispatched records that the task's reminder has been handed to the
// notifier. It is idempotent: marking an already-dispatched task again is a
// no-op, not an error. The returned bool reports whether this call performed
// the transition. The underlying store update is a single atomic conditional
// write, so two racing calls can never both observe "not dispatched".
func (i *Index) MarkDispatched(ctx context.Context, tenant, partition, id string, at time.Time) (bool, error) {
	return i.repo.MarkDispatched(ctx, tenant, partition, id, at)
}

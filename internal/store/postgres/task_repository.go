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
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taskease/taskease/internal/task"
)

const uniqueViolation = "23505"

// taskColumns is the select list every task query shares. Optional text
// columns come back as empty strings so the domain model never sees NULLs.
const taskColumns = `
	id, tenant, partition, task_text, priority,
	COALESCE(occurrence_date, ''), COALESCE(occurrence_time, ''),
	COALESCE(reminder_date, ''), COALESCE(reminder_time, ''),
	dispatched_at, created_at, updated_at`

// TaskRepository implements task.Repository on PostgreSQL
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Insert stores a new task. A collision on the occurrence slot surfaces as
// task.ErrDuplicateOccurrence via the partial unique index, so a concurrent
// add cannot slip past the service-level check.
func (r *TaskRepository) Insert(ctx context.Context, t *task.Task) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO tasks (
			id, tenant, partition, task_text, priority,
			occurrence_date, occurrence_time, reminder_date, reminder_time,
			dispatched_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6,''), NULLIF($7,''), NULLIF($8,''), NULLIF($9,''), $10, $11, $12)
	`,
		t.ID, t.Tenant, t.Partition, t.Text, string(t.Priority),
		t.OccurrenceDate, t.OccurrenceTime, t.ReminderDate, t.ReminderTime,
		t.DispatchedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return task.ErrDuplicateOccurrence
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// FindByID retrieves one task scoped to tenant and partition
func (r *TaskRepository) FindByID(ctx context.Context, tenant, partition, id string) (*task.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, task.ErrInvalidTaskID
	}

	row := r.db.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE tenant = $1 AND partition = $2 AND id = $3
	`, tenant, partition, id)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, task.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// FindAll returns every task in the partition, oldest first
func (r *TaskRepository) FindAll(ctx context.Context, tenant, partition string) ([]*task.Task, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE tenant = $1 AND partition = $2
		ORDER BY created_at
	`, tenant, partition)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// FindByOccurrence returns the task occupying the exact occurrence slot
func (r *TaskRepository) FindByOccurrence(ctx context.Context, tenant, partition, date, tm string) (*task.Task, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE tenant = $1 AND partition = $2
		  AND occurrence_date = $3 AND occurrence_time = $4
	`, tenant, partition, date, tm)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, task.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to query occurrence: %w", err)
	}
	return t, nil
}

// FindDue returns undispatched tasks whose reminder pair literally equals
// the given date and HH:MM strings
func (r *TaskRepository) FindDue(ctx context.Context, tenant, partition, date, tm string) ([]*task.Task, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE tenant = $1 AND partition = $2
		  AND reminder_date = $3 AND reminder_time = $4
		  AND dispatched_at IS NULL
	`, tenant, partition, date, tm)
	if err != nil {
		return nil, fmt.Errorf("failed to query due tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// UpdateOne applies a patch to one task
func (r *TaskRepository) UpdateOne(ctx context.Context, tenant, partition, id string, patch task.Patch) error {
	if _, err := uuid.Parse(id); err != nil {
		return task.ErrInvalidTaskID
	}

	set := "updated_at = $4"
	args := []any{tenant, partition, id, time.Now()}
	n := 5

	if patch.Text != nil {
		set += fmt.Sprintf(", task_text = $%d", n)
		args = append(args, *patch.Text)
		n++
	}
	if patch.Priority != nil {
		set += fmt.Sprintf(", priority = $%d", n)
		args = append(args, string(*patch.Priority))
		n++
	}
	if patch.OccurrenceDate != nil {
		set += fmt.Sprintf(", occurrence_date = NULLIF($%d,'')", n)
		args = append(args, *patch.OccurrenceDate)
		n++
	}
	if patch.OccurrenceTime != nil {
		set += fmt.Sprintf(", occurrence_time = NULLIF($%d,'')", n)
		args = append(args, *patch.OccurrenceTime)
		n++
	}

	tag, err := r.db.pool.Exec(ctx,
		"UPDATE tasks SET "+set+" WHERE tenant = $1 AND partition = $2 AND id = $3",
		args...,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return task.ErrDuplicateOccurrence
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// SetReminder overwrites the reminder pair and clears dispatch state. The
// rewritten reminder is a fresh one: the old dispatch marker must not keep
// the new minute from firing.
func (r *TaskRepository) SetReminder(ctx context.Context, tenant, partition, id, date, tm string) error {
	if _, err := uuid.Parse(id); err != nil {
		return task.ErrInvalidTaskID
	}

	tag, err := r.db.pool.Exec(ctx, `
		UPDATE tasks
		SET reminder_date = $4, reminder_time = $5, dispatched_at = NULL, updated_at = $6
		WHERE tenant = $1 AND partition = $2 AND id = $3
	`, tenant, partition, id, date, tm, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set reminder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// DeleteOne removes one task
func (r *TaskRepository) DeleteOne(ctx context.Context, tenant, partition, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return task.ErrInvalidTaskID
	}

	tag, err := r.db.pool.Exec(ctx, `
		DELETE FROM tasks WHERE tenant = $1 AND partition = $2 AND id = $3
	`, tenant, partition, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// DeleteMany removes every task in the partition
func (r *TaskRepository) DeleteMany(ctx context.Context, tenant, partition string) (int64, error) {
	tag, err := r.db.pool.Exec(ctx, `
		DELETE FROM tasks WHERE tenant = $1 AND partition = $2
	`, tenant, partition)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkDispatched records dispatch as one conditional UPDATE. The WHERE
// clause on dispatched_at makes the read-check and write a single atomic
// statement: of two racing markers exactly one sees a row to update.
func (r *TaskRepository) MarkDispatched(ctx context.Context, tenant, partition, id string, at time.Time) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, task.ErrInvalidTaskID
	}

	tag, err := r.db.pool.Exec(ctx, `
		UPDATE tasks
		SET dispatched_at = $4
		WHERE tenant = $1 AND partition = $2 AND id = $3
		  AND dispatched_at IS NULL
	`, tenant, partition, id, at)
	if err != nil {
		return false, fmt.Errorf("failed to mark dispatched: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanTask(row pgx.Row) (*task.Task, error) {
	var t task.Task
	var priority string
	err := row.Scan(
		&t.ID, &t.Tenant, &t.Partition, &t.Text, &priority,
		&t.OccurrenceDate, &t.OccurrenceTime,
		&t.ReminderDate, &t.ReminderTime,
		&t.DispatchedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Priority = task.Priority(priority)
	return &t, nil
}

func collectTasks(rows pgx.Rows) ([]*task.Task, error) {
	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	return tasks, nil
}

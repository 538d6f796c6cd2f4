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

package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskease/taskease/internal/apperr"
	"github.com/taskease/taskease/internal/audit"
	"github.com/taskease/taskease/internal/tenant"
)

// Extraction is the occurrence date/time pulled out of free task text.
type Extraction struct {
	Date    string // DateLayout, empty when the expression had no date
	Time    string // TimeLayout, empty when the expression had no time
	HasDate bool
	HasTime bool
}

// Extractor finds the first date/time expression in free text. ok=false means
// none found; extraction never fails.
type Extractor interface {
	Extract(text string, now time.Time) (Extraction, bool)
}

// PriorityFunc infers a priority level from task text.
type PriorityFunc func(text string) Priority

// Service implements the task CRUD surface on top of the store. New tasks go
// to the current month's partition; the partition comes into existence with
// its first task.
type Service struct {
	repo        Repository
	extractor   Extractor
	priorityFn  PriorityFunc
	auditLogger audit.Logger
	now         func() time.Time
}

// NewService creates a task service. now is injectable for tests; nil means
// wall clock.
func NewService(repo Repository, extractor Extractor, priorityFn PriorityFunc, auditLogger audit.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:        repo,
		extractor:   extractor,
		priorityFn:  priorityFn,
		auditLogger: auditLogger,
		now:         now,
	}
}

// Add creates a task in the tenant's current partition. The occurrence
// date/time is derived from the text; the priority defaults from the
// inferencer unless overridden. Two tasks in the same tenant and partition
// may not share an exact occurrence date and time, independent of text.
func (s *Service) Add(ctx context.Context, tenantName, text string, override *Priority) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("task text is required")
	}

	now := s.now()
	partition := tenant.PartitionFor(now)

	t := &Task{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Tenant:    tenantName,
		Partition: partition,
		Text:      text,
		Priority:  s.priorityFn(text),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if override != nil {
		t.Priority = *override
	}

	if ext, ok := s.extractor.Extract(text, now); ok {
		if ext.HasDate {
			t.OccurrenceDate = ext.Date
		}
		if ext.HasTime {
			t.OccurrenceTime = ext.Time
		}
	}

	if t.OccurrenceDate != "" && t.OccurrenceTime != "" {
		if err := s.checkOccurrenceFree(ctx, tenantName, partition, t.OccurrenceDate, t.OccurrenceTime, ""); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Insert(ctx, t); err != nil {
		// The store enforces the same uniqueness; a concurrent add between
		// the check above and this insert still surfaces as a conflict.
		if errors.Is(err, ErrDuplicateOccurrence) {
			return nil, apperr.Conflict("a task with the same date and time already exists")
		}
		return nil, apperr.Collaborator("failed to store task", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:      audit.TypeTaskAdded,
		Tenant:    tenantName,
		Partition: partition,
		Resource:  t.ID,
		Metadata:  map[string]any{"priority": string(t.Priority)},
	})

	return t, nil
}

// Get returns one task from the current partition.
func (s *Service) Get(ctx context.Context, tenantName, id string) (*Task, error) {
	t, err := s.repo.FindByID(ctx, tenantName, s.currentPartition(), id)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return t, nil
}

// List returns every task in the current partition.
func (s *Service) List(ctx context.Context, tenantName string) ([]*Task, error) {
	tasks, err := s.repo.FindAll(ctx, tenantName, s.currentPartition())
	if err != nil {
		return nil, apperr.Collaborator("failed to list tasks", err)
	}
	return tasks, nil
}

// Update replaces a task's text and re-derives its occurrence date/time from
// the new text. Dispatch state and the reminder pair are untouched.
func (s *Service) Update(ctx context.Context, tenantName, id, text string) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("task text is required")
	}

	now := s.now()
	partition := tenant.PartitionFor(now)

	var occDate, occTime string
	if ext, ok := s.extractor.Extract(text, now); ok {
		if ext.HasDate {
			occDate = ext.Date
		}
		if ext.HasTime {
			occTime = ext.Time
		}
	}

	if occDate != "" && occTime != "" {
		if err := s.checkOccurrenceFree(ctx, tenantName, partition, occDate, occTime, id); err != nil {
			return nil, err
		}
	}

	patch := Patch{
		Text:           &text,
		OccurrenceDate: &occDate,
		OccurrenceTime: &occTime,
	}
	if err := s.repo.UpdateOne(ctx, tenantName, partition, id, patch); err != nil {
		return nil, mapLookupErr(err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:      audit.TypeTaskUpdated,
		Tenant:    tenantName,
		Partition: partition,
		Resource:  id,
	})

	t, err := s.repo.FindByID(ctx, tenantName, partition, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return t, nil
}

// SetReminder writes the reminder date/time pair. Writing a reminder clears
// any previous dispatch state: correcting a fired reminder means creating a
// fresh one, never resetting the old marker in place.
func (s *Service) SetReminder(ctx context.Context, tenantName, id, date, tm string) (*Task, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, apperr.Validation("reminder date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(TimeLayout, tm); err != nil {
		return nil, apperr.Validation("reminder time must be HH:MM")
	}

	partition := s.currentPartition()
	if err := s.repo.SetReminder(ctx, tenantName, partition, id, date, tm); err != nil {
		return nil, mapLookupErr(err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:      audit.TypeReminderSet,
		Tenant:    tenantName,
		Partition: partition,
		Resource:  id,
		Metadata:  map[string]any{"reminder_date": date, "reminder_time": tm},
	})

	return s.Get(ctx, tenantName, id)
}

// Delete removes one task from the current partition.
func (s *Service) Delete(ctx context.Context, tenantName, id string) error {
	partition := s.currentPartition()
	if err := s.repo.DeleteOne(ctx, tenantName, partition, id); err != nil {
		return mapLookupErr(err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:      audit.TypeTaskDeleted,
		Tenant:    tenantName,
		Partition: partition,
		Resource:  id,
	})
	return nil
}

// Clear removes every task in the current partition and returns how many
// were deleted.
func (s *Service) Clear(ctx context.Context, tenantName string) (int64, error) {
	partition := s.currentPartition()
	n, err := s.repo.DeleteMany(ctx, tenantName, partition)
	if err != nil {
		return 0, apperr.Collaborator("failed to clear tasks", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:      audit.TypePartitionCleared,
		Tenant:    tenantName,
		Partition: partition,
		Metadata:  map[string]any{"deleted": n},
	})
	return n, nil
}

func (s *Service) currentPartition() string {
	return tenant.PartitionFor(s.now())
}

func (s *Service) checkOccurrenceFree(ctx context.Context, tenantName, partition, date, tm, selfID string) error {
	existing, err := s.repo.FindByOccurrence(ctx, tenantName, partition, date, tm)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return apperr.Conflict("a task with the same date and time already exists")
		}
		return nil
	case errors.Is(err, ErrTaskNotFound):
		return nil
	default:
		return apperr.Collaborator("failed to check occurrence collision", err)
	}
}

func mapLookupErr(err error) error {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		return apperr.NotFound("no task found with that id")
	case errors.Is(err, ErrInvalidTaskID):
		return apperr.Validation("invalid task id")
	default:
		return apperr.Collaborator("task store failure", err)
	}
}

package task

import (
	"context"
	"errors"
	"time"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrInvalidTaskID       = errors.New("invalid task id")
	ErrDuplicateOccurrence = errors.New("task with same occurrence date and time already exists")
)

// Patch carries the mutable fields of an update. Nil pointers leave the
// stored value untouched.
type Patch struct {
	Text           *string
	Priority       *Priority
	OccurrenceDate *string
	OccurrenceTime *string
}

// Repository is the per-tenant, per-partition task store contract.
//
// Implementations must translate malformed identifiers into ErrInvalidTaskID
// and unique-occurrence violations into ErrDuplicateOccurrence so the service
// layer never inspects driver errors.
type Repository interface {
	Insert(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, tenant, partition, id string) (*Task, error)
	FindAll(ctx context.Context, tenant, partition string) ([]*Task, error)
	// FindByOccurrence returns the task whose occurrence date and time
	// exactly match, or ErrTaskNotFound.
	FindByOccurrence(ctx context.Context, tenant, partition, date, tm string) (*Task, error)
	// FindDue returns undispatched tasks whose reminder date and time
	// literally equal the given strings.
	FindDue(ctx context.Context, tenant, partition, date, tm string) ([]*Task, error)
	UpdateOne(ctx context.Context, tenant, partition, id string, patch Patch) error
	// SetReminder overwrites the reminder pair and clears dispatch state:
	// a rewritten reminder is a fresh reminder.
	SetReminder(ctx context.Context, tenant, partition, id, date, tm string) error
	DeleteOne(ctx context.Context, tenant, partition, id string) error
	// DeleteMany removes every task in the partition and returns the count.
	DeleteMany(ctx context.Context, tenant, partition string) (int64, error)
	// MarkDispatched records dispatch as a single atomic conditional update.
	// It returns true when this call performed the transition and false when
	// the task was already dispatched; both are success.
	MarkDispatched(ctx context.Context, tenant, partition, id string, at time.Time) (bool, error)
}

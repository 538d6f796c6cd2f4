package task

import (
	"time"
)

// Priority levels, ordered from least to most urgent.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Date and time layouts used for all stored date/time strings. Dueness is
// decided by literal string equality on these forms, so every writer and the
// reminder scan must produce exactly these layouts.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Task is one entry in a tenant's monthly partition.
//
// The occurrence pair (Date/Time) is the moment the task itself happens; the
// reminder pair is the moment a notification should go out. They are
// independent optional fields and neither is ever derived from the other.
// DispatchedAt is owned exclusively by the reminder scheduler; user-facing
// CRUD never writes it.
type Task struct {
	ID             string     `json:"id"`
	Tenant         string     `json:"-"`
	Partition      string     `json:"partition"`
	Text           string     `json:"task_text"`
	Priority       Priority   `json:"priority"`
	OccurrenceDate string     `json:"date,omitempty"`
	OccurrenceTime string     `json:"time,omitempty"`
	ReminderDate   string     `json:"reminder_date,omitempty"`
	ReminderTime   string     `json:"reminder_time,omitempty"`
	DispatchedAt   *time.Time `json:"dispatched_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// HasReminder reports whether both reminder fields are set. A task without a
// full reminder pair is never visited by the scheduler.
func (t *Task) HasReminder() bool {
	return t.ReminderDate != "" && t.ReminderTime != ""
}

// Dispatched reports whether the reminder has already been handed to the
// notifier.
func (t *Task) Dispatched() bool {
	return t.DispatchedAt != nil
}

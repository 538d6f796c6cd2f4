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
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/taskease/taskease/internal/audit"
	"github.com/taskease/taskease/internal/notify"
	"github.com/taskease/taskease/internal/observability/logger"
)

// State is the scheduler's lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateTicking
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTicking:
		return "ticking"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// TickSource delivers tick instants. Injectable so the scheduler is
// constructible and testable without a real timer.
type TickSource interface {
	C() <-chan time.Time
	Stop()
}

// TimeTicker adapts time.Ticker to TickSource.
type TimeTicker struct {
	t *time.Ticker
}

// NewTimeTicker creates a wall-clock tick source with the given period.
func NewTimeTicker(period time.Duration) *TimeTicker {
	return &TimeTicker{t: time.NewTicker(period)}
}

func (tt *TimeTicker) C() <-chan time.Time { return tt.t.C }
func (tt *TimeTicker) Stop()               { tt.t.Stop() }

// TenantSource enumerates tenants and their current partition.
// tenant.Service satisfies this.
type TenantSource interface {
	ListTenants(ctx context.Context) ([]string, error)
	HasCurrentPartition(ctx context.Context, tenant string) (bool, error)
	CurrentPartition() string
}

// RecipientDirectory resolves a tenant to a notification address. A missing
// address is a normal result, not an error.
type RecipientDirectory interface {
	EmailFor(ctx context.Context, tenant string) (string, bool, error)
}

// Scheduler is the recurring dispatch loop. One tick enumerates every
// tenant, asks the index for tasks due at the current wall-clock minute and
// hands each one to the notifier exactly once.
//
// There is no persisted last-run checkpoint: a tick only ever looks at its
// own minute, so reminders that fall inside scheduler downtime are dropped
// rather than dispatched late (at-most-once, best effort).
type Scheduler struct {
	tenants   TenantSource
	index     *Index
	notifier  notify.Notifier
	directory RecipientDirectory
	audit     audit.Logger
	now       func() time.Time

	state   atomic.Int32
	tickMu  sync.Mutex
	stopCh  chan struct{}
	doneCh  chan struct{}
	stopOne sync.Once
}

// NewScheduler wires the dispatch loop. now is injectable for tests; nil
// means wall clock. The scheduler starts Idle; nothing runs until Run.
func NewScheduler(tenants TenantSource, index *Index, notifier notify.Notifier, directory RecipientDirectory, auditLogger audit.Logger, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		tenants:   tenants,
		index:     index,
		notifier:  notifier,
		directory: directory,
		audit:     auditLogger,
		now:       now,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// State returns the scheduler's current lifecycle state.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Run consumes ticks until the context is cancelled or Stop is called.
// Ticks execute synchronously on this goroutine, so two ticks can never
// overlap; when a tick outlasts the period the intervening fires are
// dropped by the tick source, not queued up.
func (s *Scheduler) Run(ctx context.Context, ticks TickSource) {
	defer close(s.doneCh)
	defer ticks.Stop()
	defer s.state.Store(int32(StateStopped))

	slog.InfoContext(ctx, "reminder scheduler started", logger.Component("scheduler"))

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case now := <-ticks.C():
			s.Tick(ctx, now)

			// A stop that arrived mid-tick wins over the next fire.
			select {
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			default:
			}
		}
	}
}

// Stop requests a graceful halt and blocks until the in-flight tick, if any,
// has finished. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOne.Do(func() {
		s.state.Store(int32(StateStopping))
		close(s.stopCh)
	})
	<-s.doneCh
}

// Tick runs one dispatch pass for the given instant. If another tick is
// still in flight the call is skipped entirely and reports false; ticks are
// serialized, never run in parallel.
//
// Failure policy: a notifier failure or missing recipient affects only that
// task; a partition or index failure affects only that tenant; only a failed
// tenant enumeration aborts the whole tick, to be retried on the next one.
// All of this is invisible to end users and surfaces in logs only.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) bool {
	if !s.tickMu.TryLock() {
		slog.WarnContext(ctx, "tick skipped, previous tick still running",
			logger.Component("scheduler"))
		return false
	}
	defer s.tickMu.Unlock()

	s.state.Store(int32(StateTicking))
	defer func() {
		// Stop may have been requested while we were ticking.
		if State(s.state.Load()) == StateTicking {
			s.state.Store(int32(StateIdle))
		}
	}()

	minute := now.Truncate(time.Minute)
	tickLabel := minute.Format("2006-01-02 15:04")

	tenants, err := s.tenants.ListTenants(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "tenant enumeration failed, aborting tick",
			logger.Component("scheduler"), logger.Tick(tickLabel), logger.Error(err))
		return true
	}

	partition := s.tenants.CurrentPartition()
	for _, tenantName := range tenants {
		s.dispatchTenant(ctx, tenantName, partition, minute, tickLabel)
	}
	return true
}

func (s *Scheduler) dispatchTenant(ctx context.Context, tenantName, partition string, minute time.Time, tickLabel string) {
	has, err := s.tenants.HasCurrentPartition(ctx, tenantName)
	if err != nil {
		slog.ErrorContext(ctx, "partition lookup failed",
			logger.Component("scheduler"), logger.Tenant(tenantName), logger.Error(err))
		return
	}
	if !has {
		return
	}

	due, err := s.index.Due(ctx, tenantName, partition, minute)
	if err != nil {
		slog.ErrorContext(ctx, "due-task query failed",
			logger.Component("scheduler"), logger.Tenant(tenantName), logger.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}

	slog.InfoContext(ctx, "due reminders found",
		logger.Component("scheduler"), logger.Tenant(tenantName),
		logger.Tick(tickLabel), logger.DueCount(len(due)))

	for _, t := range due {
		email, found, err := s.directory.EmailFor(ctx, tenantName)
		if err != nil {
			slog.ErrorContext(ctx, "recipient lookup failed",
				logger.Component("scheduler"), logger.Tenant(tenantName),
				logger.TaskID(t.ID), logger.Error(err))
			continue
		}
		if !found {
			// Reported, not retried: the task stays undispatched so a
			// later manual fix can still deliver it.
			slog.WarnContext(ctx, "no recipient email for tenant, skipping reminder",
				logger.Component("scheduler"), logger.Tenant(tenantName), logger.TaskID(t.ID))
			continue
		}

		if err := s.notifier.Send(ctx, email, "Task Reminder", t.Text); err != nil {
			slog.ErrorContext(ctx, "reminder delivery failed",
				logger.Component("scheduler"), logger.Tenant(tenantName),
				logger.TaskID(t.ID), logger.Error(err))
			s.audit.Log(ctx, audit.Event{
				Type:      audit.TypeDispatchFailed,
				Tenant:    tenantName,
				Partition: partition,
				Resource:  t.ID,
			})
			continue
		}

		if _, err := s.index.MarkDispatched(ctx, tenantName, partition, t.ID, minute); err != nil {
			slog.ErrorContext(ctx, "failed to mark reminder dispatched",
				logger.Component("scheduler"), logger.Tenant(tenantName),
				logger.TaskID(t.ID), logger.Error(err))
			continue
		}

		s.audit.Log(ctx, audit.Event{
			Type:      audit.TypeReminderDispatch,
			Tenant:    tenantName,
			Partition: partition,
			Resource:  t.ID,
			Metadata:  map[string]any{"tick": tickLabel},
		})
	}
}

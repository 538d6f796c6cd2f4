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

package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/taskease/taskease/internal/interpret"
	"github.com/taskease/taskease/internal/task"
	"github.com/taskease/taskease/internal/tenant"
)

// TaskOperations is the slice of the task service the chat path needs.
type TaskOperations interface {
	Add(ctx context.Context, tenant, text string, override *task.Priority) (*task.Task, error)
	List(ctx context.Context, tenant string) ([]*task.Task, error)
	Update(ctx context.Context, tenant, id, text string) (*task.Task, error)
	Delete(ctx context.Context, tenant, id string) error
}

// Reply is the chat endpoint's answer for one utterance.
type Reply struct {
	Intent  interpret.Intent `json:"intent"`
	Message string           `json:"message"`
	Task    *task.Task       `json:"task,omitempty"`
	Tasks   []*task.Task     `json:"tasks,omitempty"`
}

// Service routes one chat utterance: classify, run the matching task
// operation, or hand unmatched input to the conversation fallback.
type Service struct {
	classifier *interpret.Classifier
	tasks      TaskOperations
	fallback   *Fallback
	now        func() time.Time
}

// NewService creates a chat service. now is injectable for tests; nil means
// wall clock.
func NewService(classifier *interpret.Classifier, tasks TaskOperations, fallback *Fallback, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		classifier: classifier,
		tasks:      tasks,
		fallback:   fallback,
		now:        now,
	}
}

// Handle interprets one utterance for the tenant and executes it. The
// request path is synchronous; the only suspension point is the completion
// collaborator inside the fallback, which is itself bounded by a timeout.
func (s *Service) Handle(ctx context.Context, tenantName, text string) (*Reply, error) {
	partition := tenant.PartitionFor(s.now())
	cmd := s.classifier.Classify(tenantName, partition, text)

	switch cmd.Intent {
	case interpret.IntentAddTask:
		t, err := s.tasks.Add(ctx, tenantName, cmd.Text, nil)
		if err != nil {
			return nil, err
		}
		return &Reply{
			Intent:  cmd.Intent,
			Message: fmt.Sprintf("Task added with ID %s.", t.ID),
			Task:    t,
		}, nil

	case interpret.IntentListTasks:
		tasks, err := s.tasks.List(ctx, tenantName)
		if err != nil {
			return nil, err
		}
		msg := fmt.Sprintf("You have %d task(s).", len(tasks))
		if len(tasks) == 0 {
			msg = "You have no tasks this month."
		}
		return &Reply{Intent: cmd.Intent, Message: msg, Tasks: tasks}, nil

	case interpret.IntentUpdateTask:
		t, err := s.tasks.Update(ctx, tenantName, cmd.TaskID, cmd.Text)
		if err != nil {
			return nil, err
		}
		return &Reply{
			Intent:  cmd.Intent,
			Message: fmt.Sprintf("Task %s updated.", t.ID),
			Task:    t,
		}, nil

	case interpret.IntentDeleteTask:
		if err := s.tasks.Delete(ctx, tenantName, cmd.TaskID); err != nil {
			return nil, err
		}
		return &Reply{
			Intent:  cmd.Intent,
			Message: fmt.Sprintf("Task %s deleted.", cmd.TaskID),
		}, nil

	default:
		msg, err := s.fallback.Reply(ctx, tenantName, partition, cmd.Text)
		if err != nil {
			return nil, err
		}
		return &Reply{Intent: interpret.IntentUnrecognized, Message: msg}, nil
	}
}

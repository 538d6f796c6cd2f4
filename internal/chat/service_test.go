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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskease/taskease/internal/apperr"
	"github.com/taskease/taskease/internal/interpret"
	"github.com/taskease/taskease/internal/task"
)

type mockTasks struct {
	mock.Mock
}

func (m *mockTasks) Add(ctx context.Context, tenant, text string, override *task.Priority) (*task.Task, error) {
	args := m.Called(ctx, tenant, text, override)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTasks) List(ctx context.Context, tenant string) ([]*task.Task, error) {
	args := m.Called(ctx, tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTasks) Update(ctx context.Context, tenant, id, text string) (*task.Task, error) {
	args := m.Called(ctx, tenant, id, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTasks) Delete(ctx context.Context, tenant, id string) error {
	args := m.Called(ctx, tenant, id)
	return args.Error(0)
}

func marchNow() time.Time {
	return time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)
}

func newChatService(tasks TaskOperations) *Service {
	return NewService(interpret.NewClassifier(), tasks, NewFallback(nil, firstChoice{}), marchNow)
}

func TestChat_Handle_AddTask(t *testing.T) {
	tasks := new(mockTasks)
	s := newChatService(tasks)

	created := &task.Task{ID: "id-1", Text: "buy milk tomorrow", Partition: "march"}
	tasks.On("Add", mock.Anything, "alice", "buy milk tomorrow", (*task.Priority)(nil)).Return(created, nil)

	reply, err := s.Handle(context.Background(), "alice", "add task buy milk tomorrow")
	require.NoError(t, err)

	assert.Equal(t, interpret.IntentAddTask, reply.Intent)
	assert.Contains(t, reply.Message, "id-1")
	assert.Equal(t, created, reply.Task)
	tasks.AssertExpectations(t)
}

func TestChat_Handle_ListTasks(t *testing.T) {
	tasks := new(mockTasks)
	s := newChatService(tasks)

	stored := []*task.Task{{ID: "a"}, {ID: "b"}}
	tasks.On("List", mock.Anything, "alice").Return(stored, nil)

	reply, err := s.Handle(context.Background(), "alice", "what are my tasks")
	require.NoError(t, err)

	assert.Equal(t, interpret.IntentListTasks, reply.Intent)
	assert.Len(t, reply.Tasks, 2)
	tasks.AssertExpectations(t)
}

func TestChat_Handle_ListTasks_Empty(t *testing.T) {
	tasks := new(mockTasks)
	s := newChatService(tasks)

	tasks.On("List", mock.Anything, "alice").Return([]*task.Task{}, nil)

	reply, err := s.Handle(context.Background(), "alice", "list my tasks")
	require.NoError(t, err)
	assert.Equal(t, "You have no tasks this month.", reply.Message)
}

func TestChat_Handle_UpdateTask(t *testing.T) {
	tasks := new(mockTasks)
	s := newChatService(tasks)

	updated := &task.Task{ID: "id-7", Text: "buy oat milk"}
	tasks.On("Update", mock.Anything, "alice", "id-7", "buy oat milk").Return(updated, nil)

	reply, err := s.Handle(context.Background(), "alice", "update task id-7 to buy oat milk")
	require.NoError(t, err)

	assert.Equal(t, interpret.IntentUpdateTask, reply.Intent)
	assert.Equal(t, updated, reply.Task)
	tasks.AssertExpectations(t)
}

func TestChat_Handle_DeleteTask(t *testing.T) {
	tasks := new(mockTasks)
	s := newChatService(tasks)

	tasks.On("Delete", mock.Anything, "alice", "id-9").Return(nil)

	reply, err := s.Handle(context.Background(), "alice", "delete task id-9")
	require.NoError(t, err)

	assert.Equal(t, interpret.IntentDeleteTask, reply.Intent)
	assert.Contains(t, reply.Message, "id-9")
	tasks.AssertExpectations(t)
}

func TestChat_Handle_OperationErrorPassesThrough(t *testing.T) {
	tasks := new(mockTasks)
	s := newChatService(tasks)

	tasks.On("Delete", mock.Anything, "alice", "id-9").Return(apperr.NotFound("no task found with that id"))

	_, err := s.Handle(context.Background(), "alice", "delete task id-9")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestChat_Handle_UnrecognizedGoesToFallback(t *testing.T) {
	tasks := new(mockTasks)
	s := newChatService(tasks)

	reply, err := s.Handle(context.Background(), "alice", "good morning")
	require.NoError(t, err)

	assert.Equal(t, interpret.IntentUnrecognized, reply.Intent)
	assert.NotEmpty(t, reply.Message)
	// No task operation may run for conversational input.
	tasks.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

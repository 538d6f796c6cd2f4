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

package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_RuleTable(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		name   string
		input  string
		intent Intent
		text   string
		taskID string
	}{
		{
			name:   "add with task keyword",
			input:  "add task buy milk tomorrow",
			intent: IntentAddTask,
			text:   "buy milk tomorrow",
		},
		{
			name:   "add without task keyword",
			input:  "add call mom tonight",
			intent: IntentAddTask,
			text:   "call mom tonight",
		},
		{
			name:   "add is case-insensitive",
			input:  "ADD Task water the plants",
			intent: IntentAddTask,
			text:   "water the plants",
		},
		{
			name:   "delete with id",
			input:  "delete task 42",
			intent: IntentDeleteTask,
			taskID: "42",
		},
		{
			name:   "remove alias",
			input:  "remove abc-123",
			intent: IntentDeleteTask,
			taskID: "abc-123",
		},
		{
			name:   "list tasks",
			input:  "list my tasks",
			intent: IntentListTasks,
		},
		{
			name:   "show tasks",
			input:  "show me all tasks",
			intent: IntentListTasks,
		},
		{
			name:   "what question form",
			input:  "what are my tasks for this month",
			intent: IntentListTasks,
		},
		{
			name:   "update with to",
			input:  "update task 42 to buy oat milk",
			intent: IntentUpdateTask,
			text:   "buy oat milk",
			taskID: "42",
		},
		{
			name:   "change alias",
			input:  "change 42 pick up dry cleaning",
			intent: IntentUpdateTask,
			text:   "pick up dry cleaning",
			taskID: "42",
		},
		{
			name:   "greeting falls through",
			input:  "hello there",
			intent: IntentUnrecognized,
			text:   "hello there",
		},
		{
			name:   "empty input falls through",
			input:  "   ",
			intent: IntentUnrecognized,
			text:   "",
		},
		{
			name:   "task keyword alone is not a command",
			input:  "tasks are piling up",
			intent: IntentUnrecognized,
			text:   "tasks are piling up",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := c.Classify("alice", "march", tc.input)
			assert.Equal(t, tc.intent, cmd.Intent)
			assert.Equal(t, tc.text, cmd.Text)
			assert.Equal(t, tc.taskID, cmd.TaskID)
			assert.Equal(t, "alice", cmd.Tenant)
			assert.Equal(t, "march", cmd.Partition)
		})
	}
}

// An utterance containing several rule keywords fires only the earliest rule
// in the table.
func TestClassifier_FirstMatchWins(t *testing.T) {
	c := NewClassifier()

	cmd := c.Classify("alice", "march", "add task delete the old files")
	assert.Equal(t, IntentAddTask, cmd.Intent)
	assert.Equal(t, "delete the old files", cmd.Text)
}

func TestClassifier_NeverFails(t *testing.T) {
	c := NewClassifier()

	for _, input := range []string{"", "?!?!", "日本語のテキスト", "delete"} {
		cmd := c.Classify("alice", "march", input)
		assert.NotEmpty(t, cmd.Intent)
	}
}

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

	"github.com/taskease/taskease/internal/task"
)

func TestInferPriority(t *testing.T) {
	cases := []struct {
		name string
		text string
		want task.Priority
	}{
		{"urgent keyword", "urgent: renew passport", task.PriorityHigh},
		{"keyword mid-sentence", "finish the report before the deadline", task.PriorityHigh},
		{"uppercase keyword", "ASAP call the bank", task.PriorityHigh},
		{"high beats medium", "important appointment tomorrow", task.PriorityHigh},
		{"medium keyword", "dentist appointment on friday", task.PriorityMedium},
		{"tomorrow", "water the plants tomorrow", task.PriorityMedium},
		{"no keyword", "read a book", task.PriorityLow},
		{"empty text", "", task.PriorityLow},
		{"substring does not count", "handle the unimportant backlog", task.PriorityLow},
		{"punctuation bounded", "critical! fix the leak", task.PriorityHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InferPriority(tc.text))
		})
	}
}

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
	"strings"
	"unicode"

	"github.com/taskease/taskease/internal/task"
)

// High-urgency terms, checked first. Matched as whole words, case-insensitive.
var highPriorityKeywords = []string{
	"urgent", "asap", "immediately", "critical", "emergency",
	"important", "deadline", "overdue",
}

// Medium-urgency terms, checked only when no high-urgency term is present.
var mediumPriorityKeywords = []string{
	"soon", "today", "tonight", "tomorrow", "remember", "should", "appointment",
}

// InferPriority maps task text to a priority level. The first keyword set
// with a hit wins; text matching neither set is low priority. Total and
// deterministic.
func InferPriority(text string) task.Priority {
	lower := strings.ToLower(text)
	for _, kw := range highPriorityKeywords {
		if containsWord(lower, kw) {
			return task.PriorityHigh
		}
	}
	for _, kw := range mediumPriorityKeywords {
		if containsWord(lower, kw) {
			return task.PriorityMedium
		}
	}
	return task.PriorityLow
}

// containsWord reports whether s contains word bounded by non-letter,
// non-digit runes. Both arguments must already be lower-cased.
func containsWord(s, word string) bool {
	for start := 0; ; {
		i := strings.Index(s[start:], word)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(word)

		leftOK := i == 0 || isWordBreak(rune(s[i-1]))
		rightOK := end == len(s) || isWordBreak(rune(s[end]))
		if leftOK && rightOK {
			return true
		}
		start = i + 1
	}
}

func isWordBreak(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

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

// Package interpret turns free user text into structured commands: the
// command classifier, the occurrence date/time extractor and the priority
// inferencer live here. Everything in this package is stateless and safe for
// concurrent use.
package interpret

import (
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/taskease/taskease/internal/task"
)

// DateTimeExtractor pulls the first date/time expression out of free text.
// Calendar math is delegated entirely to the when rule engine; this type only
// formats what the engine resolves.
type DateTimeExtractor struct {
	parser *when.Parser
}

// NewDateTimeExtractor builds an extractor with the English and common rule
// sets.
func NewDateTimeExtractor() *DateTimeExtractor {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &DateTimeExtractor{parser: w}
}

// Extract scans text left to right and returns the first date/time expression
// found, resolved against now. ok=false means no expression was found; text
// with no dates is a normal input, never an error, and no date is ever
// fabricated.
//
// The parse base is midnight of now's day, so a result sitting exactly on
// midnight is treated as date-only: the expression carried a day but no
// clock time.
func (e *DateTimeExtractor) Extract(text string, now time.Time) (task.Extraction, bool) {
	base := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	r, err := e.parser.Parse(text, base)
	if err != nil || r == nil {
		return task.Extraction{}, false
	}

	ext := task.Extraction{
		Date:    r.Time.Format(task.DateLayout),
		HasDate: true,
	}
	if r.Time.Hour() != 0 || r.Time.Minute() != 0 {
		ext.Time = r.Time.Format(task.TimeLayout)
		ext.HasTime = true
	}
	return ext, true
}

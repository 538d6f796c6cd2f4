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
	"regexp"
	"strings"
)

// Intent is the classified category of a user utterance.
type Intent string

const (
	IntentAddTask      Intent = "add_task"
	IntentDeleteTask   Intent = "delete_task"
	IntentListTasks    Intent = "list_tasks"
	IntentUpdateTask   Intent = "update_task"
	IntentUnrecognized Intent = "unrecognized"
)

// Command is the classifier's output: one intent plus whatever captures that
// intent requires. Commands are ephemeral; they are produced per input,
// consumed immediately and never stored.
type Command struct {
	Intent    Intent
	Tenant    string
	Partition string
	// Text is the task text for add/update, or the raw utterance for
	// unrecognized input.
	Text string
	// TaskID is the captured identifier for update/delete. It is not
	// validated here; a malformed id surfaces later from the task store as
	// not-found or invalid, never as a classifier error.
	TaskID string
}

// A rule pairs a compiled pattern with the constructor for its intent.
type rule struct {
	re    *regexp.Regexp
	build func(m []string) Command
}

// The rule table is built once at process start and never mutated. Order is
// the contract: add, delete, list, update, each case-insensitive, and the
// first matching rule wins. An utterance containing several CRUD keywords
// fires only the earliest rule in this table; the rest are ignored for that
// turn.
var defaultRules = []rule{
	{
		re: regexp.MustCompile(`(?i)\badd\b\s+(?:task\s+)?(.+)$`),
		build: func(m []string) Command {
			return Command{Intent: IntentAddTask, Text: strings.TrimSpace(m[1])}
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b(?:delete|remove)\b\s+(?:task\s+)?(\S+)\s*$`),
		build: func(m []string) Command {
			return Command{Intent: IntentDeleteTask, TaskID: m[1]}
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b(?:list|show|what)\b.*\btasks?\b`),
		build: func(m []string) Command {
			return Command{Intent: IntentListTasks}
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b(?:update|change|edit)\b\s+(?:task\s+)?(\S+)\s+(?:to\s+)?(.+)$`),
		build: func(m []string) Command {
			return Command{Intent: IntentUpdateTask, TaskID: m[1], Text: strings.TrimSpace(m[2])}
		},
	},
}

// Classifier matches free text against the ordered rule table.
type Classifier struct {
	rules []rule
}

// NewClassifier creates a classifier over the default rule table.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules}
}

// Classify produces the command for one utterance. Rules are tried strictly
// in table order with first-match-wins semantics, not best-match. Input that
// matches no CRUD rule degrades to an unrecognized command for the
// conversation fallback; classification itself never fails.
func (c *Classifier) Classify(tenant, partition, text string) Command {
	trimmed := strings.TrimSpace(text)
	for _, r := range c.rules {
		if m := r.re.FindStringSubmatch(trimmed); m != nil {
			cmd := r.build(m)
			cmd.Tenant = tenant
			cmd.Partition = partition
			return cmd
		}
	}
	return Command{
		Intent:    IntentUnrecognized,
		Tenant:    tenant,
		Partition: partition,
		Text:      trimmed,
	}
}

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

// A canned intent: keyword triggers and the responses to choose from.
// Keywords match case-insensitively on word boundaries.
type intent struct {
	name      string
	keywords  []string
	responses []string
}

// The static intents table, checked before the completion collaborator is
// consulted. Built once, never mutated.
var cannedIntents = []intent{
	{
		name:     "greeting",
		keywords: []string{"hello", "hi", "hey", "good morning", "good evening"},
		responses: []string{
			"Hello! I can add, list, update and delete your tasks. What would you like to do?",
			"Hi there! Tell me about a task, or ask to see your list.",
			"Hey! Ready when you are. Try \"add buy milk tomorrow\".",
		},
	},
	{
		name:     "thanks",
		keywords: []string{"thanks", "thank you", "thx"},
		responses: []string{
			"You're welcome!",
			"Happy to help.",
			"Anytime!",
		},
	},
	{
		name:     "help",
		keywords: []string{"help", "how do i", "what can you do"},
		responses: []string{
			"You can say things like \"add buy milk tomorrow\", \"what are my tasks\", \"update task <id> to <new text>\" or \"delete task <id>\".",
			"Try \"add <task>\" to create a task, or \"what are my tasks\" to see your list.",
		},
	},
	{
		name:     "farewell",
		keywords: []string{"bye", "goodbye", "see you", "good night"},
		responses: []string{
			"Goodbye! Your tasks will be here when you get back.",
			"See you later!",
		},
	},
}

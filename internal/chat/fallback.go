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
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/taskease/taskease/internal/apperr"
	"github.com/taskease/taskease/internal/assistant"
)

// RandSource picks a number in [0, n). Injectable so tests can make response
// selection deterministic.
type RandSource interface {
	IntN(n int) int
}

type mathRand struct{}

func (mathRand) IntN(n int) int { return rand.IntN(n) }

// Fallback handles utterances no CRUD rule matched: first the static intents
// table, then the completion collaborator. It never raises to the caller
// beyond a structured error result.
type Fallback struct {
	intents   []intent
	completer assistant.Completer
	rand      RandSource
}

// NewFallback creates a fallback over the canned intents table. rand may be
// nil for the default source; completer may be nil when no assistant is
// configured.
func NewFallback(completer assistant.Completer, randSource RandSource) *Fallback {
	if randSource == nil {
		randSource = mathRand{}
	}
	return &Fallback{
		intents:   cannedIntents,
		completer: completer,
		rand:      randSource,
	}
}

// Reply produces a conversational response for unrecognized input. A canned
// intent hit answers locally with a uniformly random response from the first
// matching intent. Otherwise the completion collaborator is asked with a
// minimal context of tenant, partition and the utterance, and its text is
// returned verbatim. Collaborator failures come back as a structured
// collaborator error, never a panic or a raw transport error.
func (f *Fallback) Reply(ctx context.Context, tenant, partition, text string) (string, error) {
	lower := strings.ToLower(text)
	for _, in := range f.intents {
		for _, kw := range in.keywords {
			if containsPhrase(lower, kw) {
				return in.responses[f.rand.IntN(len(in.responses))], nil
			}
		}
	}

	if f.completer == nil {
		return "", apperr.Collaborator("no assistant configured", nil)
	}

	turns := []assistant.Turn{
		{Role: "user", Content: fmt.Sprintf("User: %s", tenant)},
		{Role: "user", Content: fmt.Sprintf("Collection: %s", partition)},
		{Role: "user", Content: text},
	}
	reply, err := f.completer.Complete(ctx, turns)
	if err != nil {
		return "", apperr.Collaborator("assistant is unavailable right now", err)
	}
	return reply, nil
}

// containsPhrase reports whether s contains phrase on word boundaries. Both
// arguments must already be lower-cased; phrases may span multiple words.
func containsPhrase(s, phrase string) bool {
	for start := 0; ; {
		i := strings.Index(s[start:], phrase)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(phrase)

		leftOK := i == 0 || isBoundary(rune(s[i-1]))
		rightOK := end == len(s) || isBoundary(rune(s[end]))
		if leftOK && rightOK {
			return true
		}
		start = i + 1
	}
}

func isBoundary(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

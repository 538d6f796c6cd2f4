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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskease/taskease/internal/apperr"
	"github.com/taskease/taskease/internal/assistant"
)

// firstChoice always picks index 0, making response selection deterministic.
type firstChoice struct{}

func (firstChoice) IntN(n int) int { return 0 }

// stubCompleter records the turns it was asked with and returns a fixed reply
// or error.
type stubCompleter struct {
	reply string
	err   error
	turns []assistant.Turn
}

func (s *stubCompleter) Complete(ctx context.Context, turns []assistant.Turn) (string, error) {
	s.turns = turns
	return s.reply, s.err
}

func TestFallback_CannedIntentAnswersLocally(t *testing.T) {
	completer := &stubCompleter{reply: "should not be used"}
	f := NewFallback(completer, firstChoice{})

	reply, err := f.Reply(context.Background(), "alice", "march", "Hello over there")
	require.NoError(t, err)
	assert.Equal(t, cannedIntents[0].responses[0], reply)
	assert.Nil(t, completer.turns, "collaborator must not be consulted on a canned hit")
}

func TestFallback_KeywordNeedsWordBoundary(t *testing.T) {
	completer := &stubCompleter{reply: "from the assistant"}
	f := NewFallback(completer, firstChoice{})

	// "hitchhiking" contains "hi" but not as a word, so this goes to the
	// collaborator.
	reply, err := f.Reply(context.Background(), "alice", "march", "thoughts on hitchhiking")
	require.NoError(t, err)
	assert.Equal(t, "from the assistant", reply)
}

func TestFallback_CompleterReceivesTenantContext(t *testing.T) {
	completer := &stubCompleter{reply: "ok"}
	f := NewFallback(completer, firstChoice{})

	_, err := f.Reply(context.Background(), "alice", "march", "tell me a joke")
	require.NoError(t, err)

	require.Len(t, completer.turns, 3)
	assert.Equal(t, "User: alice", completer.turns[0].Content)
	assert.Equal(t, "Collection: march", completer.turns[1].Content)
	assert.Equal(t, "tell me a joke", completer.turns[2].Content)
}

func TestFallback_CompleterFailureIsStructured(t *testing.T) {
	completer := &stubCompleter{err: errors.New("connection refused")}
	f := NewFallback(completer, firstChoice{})

	_, err := f.Reply(context.Background(), "alice", "march", "tell me a joke")
	require.Error(t, err)
	assert.Equal(t, apperr.KindCollaborator, apperr.KindOf(err))
	// The raw transport error stays out of the user-facing message.
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.NotContains(t, appErr.Message, "connection refused")
}

func TestFallback_NilCompleter(t *testing.T) {
	f := NewFallback(nil, firstChoice{})

	_, err := f.Reply(context.Background(), "alice", "march", "tell me a joke")
	require.Error(t, err)
	assert.Equal(t, apperr.KindCollaborator, apperr.KindOf(err))
}

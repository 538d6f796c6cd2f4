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

// Package assistant is the text-completion collaborator: a short ordered list
// of role-tagged turns in, one text response out.
package assistant

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Turn is one role-tagged message in a conversation.
type Turn struct {
	Role    string // "user" or "model"
	Content string
}

// Completer produces one text response for an ordered list of turns.
type Completer interface {
	Complete(ctx context.Context, turns []Turn) (string, error)
}

// Gemini implements Completer against the Gemini API. Every call carries a
// bounded timeout so a slow upstream can never hang a request.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

const systemPrompt = "You are TaskEase, a friendly task-list assistant. " +
	"Answer briefly and helpfully. When the user seems to want a task " +
	"operation, point them at the add/list/update/delete phrasing."

// NewGemini creates a Gemini-backed completer.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("assistant API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

// Complete sends the turns and returns the model's text verbatim.
func (g *Gemini) Complete(ctx context.Context, turns []Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		var role genai.Role = genai.RoleUser
		if t.Role == "model" || t.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Content, role))
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("completion returned no text")
	}
	return text, nil
}

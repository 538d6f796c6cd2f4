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

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/taskease/taskease/internal/apperr"
	"github.com/taskease/taskease/internal/chat"
	"github.com/taskease/taskease/internal/identity"
	"github.com/taskease/taskease/internal/task"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	identityService *identity.Service
	taskService     *task.Service
	chatService     *chat.Service
}

// NewHandler creates a new HTTP handler
func NewHandler(identityService *identity.Service, taskService *task.Service, chatService *chat.Service) *Handler {
	return &Handler{
		identityService: identityService,
		taskService:     taskService,
		chatService:     chatService,
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		// Tenant-scoped routes; the tenant is always the token subject,
		// never a header or query parameter.
		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)

			r.Post("/tasks", h.AddTask)
			r.Get("/tasks", h.ListTasks)
			r.Delete("/tasks", h.ClearTasks)
			r.Get("/tasks/{taskID}", h.GetTask)
			r.Put("/tasks/{taskID}", h.UpdateTask)
			r.Delete("/tasks/{taskID}", h.DeleteTask)
			r.Put("/tasks/{taskID}/reminder", h.SetReminder)

			r.Post("/chat", h.Chat)
		})
	})

	return r
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondAppError renders an application error from its kind. Raw
// collaborator causes never reach the response body.
func respondAppError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	message := "internal error"
	status := http.StatusBadGateway

	if errors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Kind {
		case apperr.KindValidation:
			status = http.StatusBadRequest
		case apperr.KindNotFound:
			status = http.StatusNotFound
		case apperr.KindConflict:
			status = http.StatusConflict
		case apperr.KindCollaborator:
			status = http.StatusBadGateway
		}
	}

	respondError(w, status, message)
}

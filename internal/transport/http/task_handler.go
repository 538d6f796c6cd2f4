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
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskease/taskease/internal/task"
)

type addTaskRequest struct {
	Text     string `json:"task_text"`
	Priority string `json:"priority,omitempty"`
}

type updateTaskRequest struct {
	Text string `json:"task_text"`
}

type setReminderRequest struct {
	Date string `json:"reminder_date"`
	Time string `json:"reminder_time"`
}

// AddTask handles POST /api/v1/tasks
func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var override *task.Priority
	if req.Priority != "" {
		p := task.Priority(req.Priority)
		if p != task.PriorityLow && p != task.PriorityMedium && p != task.PriorityHigh {
			respondError(w, http.StatusBadRequest, "priority must be low, medium, or high")
			return
		}
		override = &p
	}

	t, err := h.taskService.Add(r.Context(), GetTenant(r.Context()), req.Text, override)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, t)
}

// ListTasks handles GET /api/v1/tasks
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.List(r.Context(), GetTenant(r.Context()))
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// GetTask handles GET /api/v1/tasks/{taskID}
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.taskService.Get(r.Context(), GetTenant(r.Context()), chi.URLParam(r, "taskID"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, t)
}

// UpdateTask handles PUT /api/v1/tasks/{taskID}
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.taskService.Update(r.Context(), GetTenant(r.Context()), chi.URLParam(r, "taskID"), req.Text)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, t)
}

// DeleteTask handles DELETE /api/v1/tasks/{taskID}
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.Delete(r.Context(), GetTenant(r.Context()), chi.URLParam(r, "taskID")); err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

// ClearTasks handles DELETE /api/v1/tasks
func (h *Handler) ClearTasks(w http.ResponseWriter, r *http.Request) {
	n, err := h.taskService.Clear(r.Context(), GetTenant(r.Context()))
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"deleted": n})
}

// SetReminder handles PUT /api/v1/tasks/{taskID}/reminder
func (h *Handler) SetReminder(w http.ResponseWriter, r *http.Request) {
	var req setReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.taskService.SetReminder(r.Context(), GetTenant(r.Context()), chi.URLParam(r, "taskID"), req.Date, req.Time)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, t)
}

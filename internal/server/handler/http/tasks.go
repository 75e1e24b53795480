package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sorail742/task-manager-frontend/internal/middleware"
	"github.com/sorail742/task-manager-frontend/internal/models"
	"github.com/sorail742/task-manager-frontend/internal/service"
)

// TaskService defines the task operations required by the HTTP handlers.
type TaskService interface {
	ListFor(ctx context.Context, userID string, role models.Role) ([]models.Task, error)
	Create(ctx context.Context, userID string, in service.CreateTaskInput) (models.Task, error)
	Update(ctx context.Context, userID string, role models.Role, id string, patch service.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, userID string, role models.Role, id string) error
}

// TaskHandler handles the /tasks endpoints.
type TaskHandler struct {
	TaskService TaskService
}

// CreateTaskRequest is the JSON payload for POST /tasks.
type CreateTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    models.Priority `json:"priority"`
	Status      models.Status   `json:"status"`
}

// UpdateTaskRequest is the JSON payload for PATCH /tasks/:id. Absent
// fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Priority    *models.Priority `json:"priority"`
	Status      *models.Status   `json:"status"`
}

// List returns the tasks visible to the caller, scoped by role.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tasks, err := h.TaskService.ListFor(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Create stores a new task and returns the full server record.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	task, err := h.TaskService.Create(ctx, middleware.GetUserID(ctx), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// Update applies a partial patch and returns the updated record.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	task, err := h.TaskService.Update(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx),
		chi.URLParam(r, "id"), service.TaskPatch{
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			Status:      req.Status,
		})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete removes a task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := h.TaskService.Delete(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sorail742/task-manager-frontend/internal/models"
	"github.com/sorail742/task-manager-frontend/internal/repository"
)

// TaskRepository defines the persistence operations required by the
// task service.
type TaskRepository interface {
	Create(ctx context.Context, t models.Task) error
	Get(ctx context.Context, id string) (*models.Task, error)
	ListAll(ctx context.Context) ([]models.Task, error)
	ListByCreator(ctx context.Context, userID string) ([]models.Task, error)
	Update(ctx context.Context, t models.Task) error
	Delete(ctx context.Context, id string) error
}

// CreateTaskInput carries the client-supplied fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.Priority
	Status      models.Status
}

// TaskPatch carries the partial fields of an update. Nil means unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *models.Priority
	Status      *models.Status
}

// TaskService implements task CRUD with role-based scoping: members
// only see and touch their own tasks, admins see everything.
type TaskService struct {
	repo TaskRepository
}

// NewTaskService constructs a TaskService using the provided repository.
func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// ListFor returns the tasks visible to the given user.
func (s *TaskService) ListFor(ctx context.Context, userID string, role models.Role) ([]models.Task, error) {
	if role == models.RoleAdmin {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByCreator(ctx, userID)
}

// Create validates the input, assigns the server-owned fields and
// stores the task.
func (s *TaskService) Create(ctx context.Context, userID string, in CreateTaskInput) (models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return models.Task{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Priority == "" {
		in.Priority = models.PriorityLow
	}
	if in.Status == "" {
		in.Status = models.StatusPending
	}
	if !in.Priority.Valid() {
		return models.Task{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}
	if !in.Status.Valid() {
		return models.Task{}, fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}

	t := models.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
		CreatedBy:   userID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// Update applies a partial patch to a task the caller may touch and
// returns the updated record. A member patching another user's task
// gets ErrNotFound, the same as a missing id, so ids can't be probed.
func (s *TaskService) Update(ctx context.Context, userID string, role models.Role, id string, patch TaskPatch) (models.Task, error) {
	t, err := s.visibleTask(ctx, userID, role, id)
	if err != nil {
		return models.Task{}, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return models.Task{}, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return models.Task{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, *patch.Priority)
		}
		t.Priority = *patch.Priority
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return models.Task{}, fmt.Errorf("%w: unknown status %q", ErrValidation, *patch.Status)
		}
		t.Status = *patch.Status
	}

	if err := s.repo.Update(ctx, *t); err != nil {
		return models.Task{}, err
	}
	return *t, nil
}

// Delete removes a task the caller may touch.
func (s *TaskService) Delete(ctx context.Context, userID string, role models.Role, id string) error {
	if _, err := s.visibleTask(ctx, userID, role, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) visibleTask(ctx context.Context, userID string, role models.Role, id string) (*models.Task, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && t.CreatedBy != userID {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sorail742/task-manager-frontend/internal/middleware"
	"github.com/sorail742/task-manager-frontend/internal/models"
)

// UserService defines the user administration operations required by
// the HTTP handlers.
type UserService interface {
	List(ctx context.Context) ([]models.Identity, error)
	Delete(ctx context.Context, callerID, id string) error
}

// UserHandler handles the admin-only /users endpoints.
type UserHandler struct {
	UserService UserService
}

// List returns every user.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if middleware.GetRole(r.Context()) != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}

	users, err := h.UserService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if users == nil {
		users = []models.Identity{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Delete removes a user. The service rejects deleting the caller's own
// account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if middleware.GetRole(ctx) != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}

	if err := h.UserService.Delete(ctx, middleware.GetUserID(ctx), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

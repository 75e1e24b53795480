// Package http provides the HTTP handlers for the task-manager API:
// authentication, user administration and task CRUD.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sorail742/task-manager-frontend/internal/middleware"
	"github.com/sorail742/task-manager-frontend/internal/models"
)

// AuthService defines the authentication operations required by the
// HTTP handlers.
type AuthService interface {
	// Register creates an account with the given role.
	Register(ctx context.Context, name, email, password string, role models.Role) (models.Identity, error)
	// Login verifies credentials and returns a bearer token plus identity.
	Login(ctx context.Context, email, password string) (string, models.Identity, error)
	// Identity returns the current profile for a user id.
	Identity(ctx context.Context, userID string) (models.Identity, error)
}

// AuthHandler handles registration, login and session validation.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// RegisterRequest is the JSON payload for account creation endpoints.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the payload of a successful login.
type LoginResponse struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

// Register handles public self-registration; the account is always a member.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.createAccount(w, r, models.RoleMember)
}

// CreateMember creates a member account on behalf of an authenticated user.
func (h *AuthHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	h.createAccount(w, r, models.RoleMember)
}

// CreateAdmin creates an admin account; only admins may call it.
func (h *AuthHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	if middleware.GetRole(r.Context()) != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}
	h.createAccount(w, r, models.RoleAdmin)
}

func (h *AuthHandler) createAccount(w http.ResponseWriter, r *http.Request, role models.Role) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, identity)
}

// Login handles credential exchange.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, identity, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: identity})
}

// Me validates the bearer token and returns the caller's identity.
// Clients use this on startup to settle a persisted session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, err := h.AuthService.Identity(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, identity)
}

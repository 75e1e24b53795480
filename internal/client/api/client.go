// Package api implements the typed HTTP client for the task-manager
// REST contract. Every call attaches the current bearer credential and
// normalizes failures into a single Error shape.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sorail742/task-manager-frontend/internal/models"
)

// TokenSource supplies the bearer credential for outgoing requests.
// An empty string means no credential is attached.
type TokenSource interface {
	Credential() string
}

// StaticToken is a fixed-credential TokenSource, mainly for tests and
// one-shot calls made before a session store exists.
type StaticToken string

func (s StaticToken) Credential() string { return string(s) }

// Client issues requests against the task-manager API. It holds no
// session state of its own: on a 401 it surfaces a KindAuth error and
// leaves the logout decision to the caller.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// New creates a Client for the given base URL. tokens may be nil when
// only unauthenticated endpoints will be used.
func New(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		http:    &http.Client{Timeout: timeout},
	}
}

// LoginResult is the payload of a successful POST /auth/login.
type LoginResult struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

// RegisterRequest is the payload for POST /auth/register and the
// member/admin creation endpoints.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateTaskRequest is the payload for POST /tasks.
type CreateTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    models.Priority `json:"priority"`
	Status      models.Status   `json:"status"`
}

// TaskPatch carries the partial fields for PATCH /tasks/:id.
// Nil fields are left unchanged by the server.
type TaskPatch struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Priority    *models.Priority `json:"priority,omitempty"`
	Status      *models.Status   `json:"status,omitempty"`
}

// Login exchanges credentials for a token and identity.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account. The caller logs in separately.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

// Me validates the current credential and returns the server's view of
// the identity. A 401 here means the credential is no longer usable.
func (c *Client) Me(ctx context.Context) (models.Identity, error) {
	var out models.Identity
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out)
	return out, err
}

// CreateMember creates a member account; any authenticated caller may do this.
func (c *Client) CreateMember(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/members", req, nil)
}

// CreateAdmin creates an admin account; the server requires an admin caller.
func (c *Client) CreateAdmin(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/admin", req, nil)
}

// ListUsers returns all users. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]models.Identity, error) {
	var out []models.Identity
	err := c.do(ctx, http.MethodGet, "/users", nil, &out)
	return out, err
}

// DeleteUser removes a user by id. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil)
}

// ListTasks returns the tasks visible to the caller; the server scopes
// the result by role.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var out []models.Task
	err := c.do(ctx, http.MethodGet, "/tasks", nil, &out)
	return out, err
}

// CreateTask creates a task and returns the server record, including
// the assigned id and createdAt.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (models.Task, error) {
	var out models.Task
	err := c.do(ctx, http.MethodPost, "/tasks", req, &out)
	return out, err
}

// UpdateTask applies a partial patch and returns the updated record.
func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) (models.Task, error) {
	var out models.Task
	err := c.do(ctx, http.MethodPatch, "/tasks/"+id, patch, &out)
	return out, err
}

// DeleteTask removes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

// do builds and executes one request. A transport failure becomes a
// KindNetwork Error; any non-2xx response is decoded for its message
// and classified by status code.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Credential(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:       kindFromStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body, resp.StatusCode),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorMessage pulls the server's {"message": ...} out of an error
// body, falling back to the standard status text.
func errorMessage(body io.Reader, code int) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return http.StatusText(code)
}

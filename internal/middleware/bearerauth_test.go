package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorail742/task-manager-frontend/internal/models"
	"github.com/sorail742/task-manager-frontend/internal/token"
)

func TestBearerAuth(t *testing.T) {
	manager := token.NewManager("secret", time.Hour, "test")
	valid, err := manager.Issue("user-1", models.RoleAdmin)
	require.NoError(t, err)

	expired, err := token.NewManager("secret", -time.Minute, "test").Issue("user-1", models.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantCode   int
		wantUserID string
		wantRole   models.Role
	}{
		{"no header", "", http.StatusUnauthorized, "", ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "", ""},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, "", ""},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, "", ""},
		{"valid token", "Bearer " + valid, http.StatusOK, "user-1", models.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID string
			var gotRole models.Role
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID = GetUserID(r.Context())
				gotRole = GetRole(r.Context())
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			BearerAuth(manager)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
			assert.Equal(t, tt.wantRole, gotRole)
			if tt.wantCode == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), "message")
			}
		})
	}
}

func TestGetUserID_MissingContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetUserID(req.Context()))
	assert.Empty(t, GetRole(req.Context()))
}

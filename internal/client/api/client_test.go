package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorail742/task-manager-frontend/internal/models"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.Task{})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("t1"), time.Second)
	_, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer t1", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(&LoginResult{Token: "abc"})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken(""), time.Second)
	_, err := c.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])
		assert.Equal(t, "x", body["password"])

		_ = json.NewEncoder(w).Encode(&LoginResult{
			Token: "t1",
			User:  models.Identity{ID: "1", Role: models.RoleMember},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil, time.Second)
	res, err := c.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "t1", res.Token)
	assert.Equal(t, models.RoleMember, res.User.Role)
}

func TestClient_ErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		wantMsg  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"invalid token"}`, KindAuth, "invalid token"},
		{"not found", http.StatusNotFound, `{"message":"task not found"}`, KindNotFound, "task not found"},
		{"validation", http.StatusConflict, `{"message":"email already in use"}`, KindValidation, "email already in use"},
		{"server", http.StatusInternalServerError, `boom`, KindServer, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, StaticToken("t1"), time.Second)
			_, err := c.ListTasks(context.Background())
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestClient_NetworkErrorIsDistinguishable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	c := New(srv.URL, nil, time.Second)
	_, err := c.ListTasks(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.False(t, IsAuth(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
}

func TestClient_UpdateTaskSendsPartialPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/tasks/42", r.URL.Path)

		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Contains(t, raw, "status")
		assert.NotContains(t, raw, "title")

		_ = json.NewEncoder(w).Encode(models.Task{ID: "42", Status: models.StatusDone})
	}))
	defer srv.Close()

	status := models.StatusDone
	c := New(srv.URL, StaticToken("t1"), time.Second)
	task, err := c.UpdateTask(context.Background(), "42", TaskPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, task.Status)
}

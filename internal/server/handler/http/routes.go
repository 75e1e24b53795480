package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sorail742/task-manager-frontend/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the task-manager API.
//
// Routes:
//
//	POST   /auth/register  → authHandler.Register (public)
//	POST   /auth/login     → authHandler.Login (public)
//	GET    /auth/me        → authHandler.Me
//	POST   /auth/members   → authHandler.CreateMember
//	POST   /auth/admin     → authHandler.CreateAdmin (admin)
//	GET    /users          → userHandler.List (admin)
//	DELETE /users/{id}     → userHandler.Delete (admin)
//	GET    /tasks          → taskHandler.List
//	POST   /tasks          → taskHandler.Create
//	PATCH  /tasks/{id}     → taskHandler.Update
//	DELETE /tasks/{id}     → taskHandler.Delete
//
// Everything below the public auth endpoints requires a valid bearer token.
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	taskHandler *TaskHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	// Protected group: requires a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(verifier))

		r.Get("/auth/me", authHandler.Me)
		r.Post("/auth/members", authHandler.CreateMember)
		r.Post("/auth/admin", authHandler.CreateAdmin)

		r.Get("/users", userHandler.List)
		r.Delete("/users/{id}", userHandler.Delete)

		r.Get("/tasks", taskHandler.List)
		r.Post("/tasks", taskHandler.Create)
		r.Patch("/tasks/{id}", taskHandler.Update)
		r.Delete("/tasks/{id}", taskHandler.Delete)
	})

	return r
}

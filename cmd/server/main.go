// Package main starts the task-manager API server: configuration,
// logging, database connection, repositories, services, handlers and
// the HTTP listener.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/sorail742/task-manager-frontend/internal/config"
	"github.com/sorail742/task-manager-frontend/internal/db"
	"github.com/sorail742/task-manager-frontend/internal/logger"
	"github.com/sorail742/task-manager-frontend/internal/repository"
	"github.com/sorail742/task-manager-frontend/internal/server/handler/http"
	"github.com/sorail742/task-manager-frontend/internal/service"
	"github.com/sorail742/task-manager-frontend/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		return
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		return
	}
	defer func() { _ = zapLogger.Sync() }()

	postgresDB, err := db.InitPostgres(cfg.Server.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	userRepo := repository.NewPostgresUserRepository(postgresDB)
	taskRepo := repository.NewPostgresTaskRepository(postgresDB)

	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo)

	authHandler := &http.AuthHandler{AuthService: authService}
	userHandler := &http.UserHandler{UserService: userService}
	taskHandler := &http.TaskHandler{TaskService: taskService}

	router := http.NewRouter(authHandler, userHandler, taskHandler, tokens, zapLogger)

	server := &nethttp.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", cfg.Server.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

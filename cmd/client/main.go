// Package main starts the task-manager terminal client.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sorail742/task-manager-frontend/internal/client/api"
	"github.com/sorail742/task-manager-frontend/internal/client/session"
	"github.com/sorail742/task-manager-frontend/internal/client/tui"
	"github.com/sorail742/task-manager-frontend/internal/config"
	"github.com/sorail742/task-manager-frontend/internal/logger"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file.
	if dir := filepath.Dir(cfg.Client.LogFile); dir != "." {
		_ = os.MkdirAll(dir, 0o700)
	}
	zapLogger, err := logger.NewFile(cfg.Client.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	zapLogger.Info("starting client",
		zap.String("version", cmp.Or(version, "N/A")),
		zap.String("buildDate", cmp.Or(buildDate, "N/A")),
		zap.String("api", cfg.Client.APIBaseURL),
	)

	keystore := session.NewKeystore(cfg.Client.StateFile)
	store := session.NewStore(keystore, zapLogger)
	client := api.New(cfg.Client.APIBaseURL, store, cfg.Client.RequestTimeout)

	app := tui.NewApp(store, client, zapLogger, cfg.Client.RequestTimeout)
	if err := app.Run(context.Background()); err != nil {
		zapLogger.Error("client exited with error", zap.Error(err))
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

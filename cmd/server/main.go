// Package main implements the entry point for the railgo server, a
// train ticketing API exposing user accounts, stations, trains, and
// ticket validation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/mbriand/railgo/internal/config"
	"github.com/mbriand/railgo/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("railgo: %v", err)
	}
}

// run loads configuration, dispatches migration commands, and otherwise
// wires the application and serves until shutdown.
func run() error {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	if *migrateCmd != "" {
		return handleMigrations(cfg, *migrateCmd, appLogger)
	}

	ctx := context.Background()

	db, err := setupAppDatabase(ctx, cfg, appLogger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

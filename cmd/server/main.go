// Package main implements the entry point for the Taskdeck API server,
// which provides user accounts and per-user task management over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"Run database migrations (up|down|status|create) and exit",
	)
	migrationName := flag.String(
		"migration-name",
		"",
		"Name for a new migration when using -migrate create",
	)
	flag.Parse()

	if err := run(*migrateCmd, *migrationName); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run wires configuration, logging, the database and the HTTP server
// together. Split from main so failures surface as returned errors.
func run(migrateCmd, migrationName string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if migrateCmd != "" {
		return handleMigrations(cfg, migrateCmd, migrationName)
	}

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		// The application owns db cleanup once constructed; before that
		// point the connection is still ours to close.
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

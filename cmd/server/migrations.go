package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/taskdeck/taskdeck-api/internal/config"
)

// migrationsDir is where goose SQL migration files live, relative to the
// working directory the server is launched from.
const migrationsDir = "migrations"

// slogGooseLogger adapts goose's logger interface to structured logging.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), "component", "goose")
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), "component", "goose")
}

// handleMigrations executes the requested migration command and returns.
// The server does not start when a migration command is given.
func handleMigrations(cfg *config.Config, command, migrationName string) error {
	migrationLogger := slog.Default().With(
		"component", "migrations",
		"command", command,
	)

	goose.SetLogger(&slogGooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	// The create command only writes a new file; no connection needed.
	if command == "create" {
		if migrationName == "" {
			return fmt.Errorf("migration name is required for create")
		}
		migrationLogger.Info("Creating migration", "name", migrationName)
		return goose.Create(nil, migrationsDir, migrationName, "sql")
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			migrationLogger.Error("Error closing database connection", "error", closeErr)
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation")

	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command: %q", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	migrationLogger.Info("Migration operation completed",
		"duration_ms", time.Since(startTime).Milliseconds())
	return nil
}

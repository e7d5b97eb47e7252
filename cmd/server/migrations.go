package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/sqldoc"
)

// handleMigrations executes a migration command against the configured SQL store.
// Only the sqlite and postgres backends have a schema to migrate.
func handleMigrations(
	ctx context.Context,
	cfg *config.Config,
	command sqldoc.MigrationCommand,
	logger *slog.Logger,
) error {
	if !cfg.UsesSQL() {
		return fmt.Errorf(
			"migrations require the sqlite or postgres store backend, got %q",
			cfg.Store.Backend,
		)
	}

	logger.Info("Executing migrations", "command", command, "backend", cfg.Store.Backend)

	db, dialect, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Error closing database connection", "error", closeErr)
		}
	}()

	return sqldoc.Migrate(ctx, db, dialect, command, logger)
}

package sqldoc

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the name of the table used by goose to track migrations.
const MigrationTableName = "schema_migrations"

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// goose keeps its configuration in package globals, so every run holds this lock.
var gooseMu sync.Mutex

// MigrationCommand names a goose operation supported by Migrate.
type MigrationCommand string

// Supported migration commands.
const (
	MigrateUp      MigrationCommand = "up"
	MigrateDown    MigrationCommand = "down"
	MigrateStatus  MigrationCommand = "status"
	MigrateVersion MigrationCommand = "version"
)

// ParseMigrationCommand validates a command name.
func ParseMigrationCommand(name string) (MigrationCommand, error) {
	switch cmd := MigrationCommand(name); cmd {
	case MigrateUp, MigrateDown, MigrateStatus, MigrateVersion:
		return cmd, nil
	default:
		return "", fmt.Errorf(
			"unknown migration command: %s (expected up, down, status, or version)",
			name,
		)
	}
}

// Migrate runs a goose command against db using the embedded migrations for dialect.
func Migrate(
	ctx context.Context,
	db *sql.DB,
	dialect Dialect,
	command MigrationCommand,
	logger *slog.Logger,
) error {
	if logger == nil {
		logger = slog.Default()
	}
	migrationLogger := logger.With(
		slog.String("component", "migrations"),
		slog.String("command", string(command)),
		slog.String("dialect", string(dialect)),
	)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect(dialect.gooseDialect()); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	dir := path.Join("migrations", string(dialect))

	var err error
	switch command {
	case MigrateUp:
		migrationLogger.Info("applying pending migrations")
		err = goose.UpContext(ctx, db, dir)
	case MigrateDown:
		migrationLogger.Info("rolling back one migration version")
		err = goose.DownContext(ctx, db, dir)
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, dir)
	case MigrateVersion:
		err = goose.VersionContext(ctx, db, dir)
	default:
		_, err = ParseMigrationCommand(string(command))
		return err
	}
	if err != nil {
		migrationLogger.Error("migration command failed", slog.String("error", redact.Error(err)))
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	migrationLogger.Info("migration command executed successfully")
	return nil
}

// slogGooseLogger adapts slog to the goose.Logger interface.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding messages to Error.
// It does not exit; the failing goose call returns an error to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

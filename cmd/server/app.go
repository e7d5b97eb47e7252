package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/docstore"
	"github.com/phrazzld/taskboard-api/internal/platform/memory"
	"github.com/phrazzld/taskboard-api/internal/platform/neo4jdoc"
	"github.com/phrazzld/taskboard-api/internal/platform/redisdoc"
	"github.com/phrazzld/taskboard-api/internal/platform/sqldoc"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Backend connections; at most one is set, depending on store.backend
	db    *sql.DB
	redis *redis.Client
	neo4j neo4j.DriverWithContext

	taskStore   store.TaskStore
	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
// Connections opened before a failure are released before returning the error.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.setupTaskStore(ctx); err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to set up %s task store: %w", cfg.Store.Backend, err)
	}

	taskService, err := service.NewTaskService(app.taskStore, logger)
	if err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}
	app.taskService = taskService

	logger.Info("Application initialized successfully", "store_backend", cfg.Store.Backend)
	return app, nil
}

// setupTaskStore opens the configured backend and builds the task store over it.
func (app *application) setupTaskStore(ctx context.Context) error {
	cfg := app.config

	var collection docstore.Collection
	switch cfg.Store.Backend {
	case config.BackendMemory:
		app.taskStore = memory.NewTaskStore(app.logger)
		return nil

	case config.BackendSQLite, config.BackendPostgres:
		db, dialect, err := setupAppDatabase(ctx, cfg, app.logger)
		if err != nil {
			return err
		}
		app.db = db

		if cfg.Database.AutoMigrate {
			if err := sqldoc.Migrate(ctx, db, dialect, sqldoc.MigrateUp, app.logger); err != nil {
				return err
			}
		}
		collection = sqldoc.NewCollection(db, dialect, cfg.Store.Collection, app.logger)

	case config.BackendRedis:
		client, err := setupAppRedis(ctx, cfg, app.logger)
		if err != nil {
			return err
		}
		app.redis = client
		collection = redisdoc.NewCollection(client, cfg.Redis.KeyPrefix, cfg.Store.Collection, app.logger)

	case config.BackendNeo4j:
		driver, err := setupAppNeo4j(ctx, cfg, app.logger)
		if err != nil {
			return err
		}
		app.neo4j = driver
		collection = neo4jdoc.NewCollection(driver, cfg.Neo4j.Database, cfg.Store.Collection, app.logger)

	default:
		return fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}

	app.taskStore = docstore.NewTaskStore(collection, app.logger)
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", redact.Error(err))
		}
		app.db = nil
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis client", "error", redact.Error(err))
		}
		app.redis = nil
	}

	if app.neo4j != nil {
		if err := app.neo4j.Close(ctx); err != nil {
			app.logger.Error("Error closing neo4j driver", "error", redact.Error(err))
		}
		app.neo4j = nil
	}

	app.logger.Info("Application shutdown completed")
}

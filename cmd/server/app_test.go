package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/docstore"
	"github.com/phrazzld/taskboard-api/internal/platform/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication_Backends(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		app, err := newApplication(ctx, testConfig(config.BackendMemory, ""), discardLogger())
		require.NoError(t, err)
		defer app.cleanup(ctx)

		assert.IsType(t, &memory.TaskStore{}, app.taskStore)
		assert.Nil(t, app.db)
		assert.NotNil(t, app.taskService)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := testConfig(config.BackendSQLite, filepath.Join(t.TempDir(), "taskboard.db"))
		app, err := newApplication(ctx, cfg, discardLogger())
		require.NoError(t, err)

		assert.IsType(t, &docstore.TaskStore{}, app.taskStore)
		require.NotNil(t, app.db)

		task, err := app.taskService.CreateTask(ctx, "Buy milk", "2 liters")
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatePending, task.State)

		app.cleanup(ctx)
		assert.Nil(t, app.db, "cleanup should release the database")
	})
}

func TestNewApplication_SQLiteWithoutMigrations(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.BackendSQLite, filepath.Join(t.TempDir(), "taskboard.db"))
	cfg.Database.AutoMigrate = false

	app, err := newApplication(ctx, cfg, discardLogger())
	require.NoError(t, err)
	defer app.cleanup(ctx)

	_, err = app.taskService.GetAllTasks(ctx)
	assert.Error(t, err, "the documents table does not exist until migrations run")
}

func TestNewApplication_Failures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"unknown backend", testConfig("firestore", "")},
		{"sqlite without dsn", testConfig(config.BackendSQLite, "")},
		{"unreachable redis", func() *config.Config {
			cfg := testConfig(config.BackendRedis, "")
			cfg.Redis.URL = "not a url"
			return cfg
		}()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, err := newApplication(ctx, tc.cfg, discardLogger())
			assert.Error(t, err)
			assert.Nil(t, app)
		})
	}
}

func TestStartHTTPServer_StopsOnContextCancel(t *testing.T) {
	cfg := testConfig(config.BackendMemory, "")
	cfg.Server.Port = 0

	app, err := newApplication(context.Background(), cfg, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}

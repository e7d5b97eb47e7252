package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/phrazzld/taskboard-api/internal/redact"
)

// newHTTPServer configures the HTTP server for the router.
func (app *application) newHTTPServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: router,
	}
}

// startHTTPServer starts the HTTP server and blocks until SIGINT/SIGTERM,
// ctx cancellation or a listener failure. The server is then drained within
// the configured shutdown timeout and backend connections are closed.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := app.newHTTPServer(router)
	timeout := app.config.Server.ShutdownTimeout

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Signal handling and ctx cancellation may both trigger shutdown
	var (
		shutdownOnce sync.Once
		shutdownErr  error
	)
	shutdown := func(ctx context.Context) error {
		shutdownOnce.Do(func() {
			app.logger.Info("Shutting down server...")
			shutdownErr = server.Shutdown(ctx)
			app.cleanup(ctx)
		})
		return shutdownErr
	}

	wait := gfshutdown.GracefulShutdown(
		ctx,
		timeout,
		map[string]gfshutdown.Operation{
			"http-server": shutdown,
		},
	)

	select {
	case exitCode := <-wait:
		if exitCode != 0 {
			return fmt.Errorf("graceful shutdown finished with exit code %d", exitCode)
		}
	case err := <-serverErr:
		app.logger.Error("Server failed", "error", redact.Error(err))
		app.cleanup(ctx)
		return err
	case <-ctx.Done():
		app.logger.Info("Server context canceled, shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
	}

	app.logger.Info("Server shutdown completed")
	return nil
}

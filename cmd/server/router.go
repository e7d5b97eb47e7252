package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskboard-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskboard-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if app.config.Server.RequestLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(
		apiMiddleware.NewTraceMiddleware(app.logger),
	) // Add trace IDs for improved error handling

	// Registered before the task routes so the mounted subrouter inherits them
	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.NotFound)

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	r.Route("/tasks", taskHandler.Routes)

	r.Get("/test", api.TestRoute)
	r.Get("/health", api.Health)

	return r
}

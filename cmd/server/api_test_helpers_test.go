package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/stretchr/testify/require"
)

// taskJSON mirrors the task wire format.
type taskJSON struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"createdAt"`
}

type taskListJSON struct {
	Tasks []taskJSON `json:"tasks"`
}

type messageJSON struct {
	Message string `json:"message"`
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// testConfig returns a valid configuration for the given backend.
func testConfig(backend, databaseURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            3000,
			LogLevel:        "info",
			ShutdownTimeout: time.Second,
		},
		Store: config.StoreConfig{
			Backend:    backend,
			Collection: config.DefaultCollection,
		},
		Database: config.DatabaseConfig{
			URL:         databaseURL,
			AutoMigrate: true,
		},
	}
}

// setupTestServer builds the full application over cfg and serves its router.
func setupTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, discardLogger())
	require.NoError(t, err, "Failed to build application")

	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(func() {
		server.Close()
		app.cleanup(ctx)
	})
	return server
}

// doJSON sends a request with an optional raw JSON body and returns the
// response status and body.
func doJSON(t *testing.T, server *httptest.Server, method, path, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func createTask(t *testing.T, server *httptest.Server, title, description string) taskJSON {
	t.Helper()

	payload, err := json.Marshal(map[string]string{"title": title, "description": description})
	require.NoError(t, err)

	status, body := doJSON(t, server, http.MethodPost, "/tasks", string(payload))
	require.Equal(t, http.StatusCreated, status, "body: %s", body)

	var task taskJSON
	require.NoError(t, json.Unmarshal(body, &task))
	return task
}

func decodeTask(t *testing.T, body []byte) taskJSON {
	t.Helper()
	var task taskJSON
	require.NoError(t, json.Unmarshal(body, &task), "body: %s", body)
	return task
}

func decodeMessage(t *testing.T, body []byte) string {
	t.Helper()
	var msg messageJSON
	require.NoError(t, json.Unmarshal(body, &msg), "body: %s", body)
	return msg.Message
}

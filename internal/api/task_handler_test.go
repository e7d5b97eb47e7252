package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

func existingTask() *domain.Task {
	return &domain.Task{
		ID:          "task-1",
		Title:       "Buy milk",
		Description: "2 liters",
		State:       domain.TaskStatePending,
		CreatedAt:   fixedTime,
	}
}

// newTestRouter mounts the handler the same way the server does.
func newTestRouter(svc *mocks.MockTaskService) http.Handler {
	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(NotFound)
	r.Route("/tasks", NewTaskHandler(svc, nil).Routes)
	r.Get("/test", TestRoute)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp.Message
}

func TestNewTaskHandler_NilServicePanics(t *testing.T) {
	assert.Panics(t, func() { NewTaskHandler(nil, nil) })
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Parallel()

	long := func(n int) string { return strings.Repeat("a", n) }

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedMsg    string
		expectCall     bool
	}{
		{
			name:           "valid task",
			body:           `{"title":"Buy milk","description":"2 liters"}`,
			expectedStatus: http.StatusCreated,
			expectCall:     true,
		},
		{
			name:           "title at limit",
			body:           `{"title":"` + long(99) + `","description":"d"}`,
			expectedStatus: http.StatusCreated,
			expectCall:     true,
		},
		{
			name:           "missing title",
			body:           `{"description":"d"}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgTitleRequired,
		},
		{
			name:           "empty title",
			body:           `{"title":"","description":"d"}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgTitleRequired,
		},
		{
			name:           "title too long",
			body:           `{"title":"` + long(100) + `","description":"d"}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgTitleRequired,
		},
		{
			name:           "non-string title",
			body:           `{"title":42,"description":"d"}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgTitleRequired,
		},
		{
			name:           "title checked before description",
			body:           `{"title":"","description":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgTitleRequired,
		},
		{
			name:           "missing description",
			body:           `{"title":"t"}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgDescriptionRequired,
		},
		{
			name:           "description too long",
			body:           `{"title":"t","description":"` + long(500) + `"}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgDescriptionRequired,
		},
		{
			name:           "null description",
			body:           `{"title":"t","description":null}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgDescriptionRequired,
		},
		{
			name:           "empty body",
			body:           "",
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgTitleRequired,
		},
		{
			name:           "malformed json",
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgInvalidBody,
		},
		{
			name:           "service failure",
			body:           `{"title":"t","description":"d"}`,
			serviceErr:     errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    msgCreateFailed,
			expectCall:     true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := &mocks.MockTaskService{
				CreateTaskFn: func(_ context.Context, title, description string) (*domain.Task, error) {
					if tc.serviceErr != nil {
						return nil, tc.serviceErr
					}
					return &domain.Task{
						ID:          "new-id",
						Title:       title,
						Description: description,
						State:       domain.TaskStatePending,
						CreatedAt:   fixedTime,
					}, nil
				},
			}

			w := doRequest(t, newTestRouter(svc), http.MethodPost, "/tasks", tc.body)

			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectCall {
				assert.Equal(t, 1, svc.Calls("CreateTask"))
			} else {
				assert.Zero(t, svc.Calls("CreateTask"), "service must not be called when validation fails")
			}

			if tc.expectedStatus == http.StatusCreated {
				var resp TaskResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "new-id", resp.ID)
				assert.Equal(t, "pending", resp.State)
				assert.True(t, fixedTime.Equal(resp.CreatedAt))
				return
			}
			assert.Equal(t, tc.expectedMsg, decodeMessage(t, w))
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestTaskHandler_ListTasks(t *testing.T) {
	t.Parallel()

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockTaskService{Tasks: nil}

		w := doRequest(t, newTestRouter(svc), http.MethodGet, "/tasks", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"tasks":[]}`, w.Body.String())
	})

	t.Run("returns every task", func(t *testing.T) {
		t.Parallel()
		second := existingTask()
		second.ID = "task-2"
		svc := &mocks.MockTaskService{Tasks: []*domain.Task{existingTask(), second}}

		w := doRequest(t, newTestRouter(svc), http.MethodGet, "/tasks", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp TaskListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Tasks, 2)
		assert.Equal(t, "task-1", resp.Tasks[0].ID)
		assert.Equal(t, "task-2", resp.Tasks[1].ID)
	})

	t.Run("service failure", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockTaskService{DefaultError: errors.New("timeout")}

		w := doRequest(t, newTestRouter(svc), http.MethodGet, "/tasks", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, msgListFailed, decodeMessage(t, w))
	})
}

func TestTaskHandler_GetTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		lookupErr      error
		expectedStatus int
		expectedMsg    string
	}{
		{"found", nil, http.StatusOK, ""},
		{"not found", store.ErrTaskNotFound, http.StatusNotFound, "task with id=task-1 was not found"},
		{"lookup failure", errors.New("broken pipe"), http.StatusInternalServerError, msgGetFailed},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := &mocks.MockTaskService{
				GetTaskByIDFn: func(_ context.Context, id string) (*domain.Task, error) {
					assert.Equal(t, "task-1", id)
					if tc.lookupErr != nil {
						return nil, tc.lookupErr
					}
					return existingTask(), nil
				},
			}

			w := doRequest(t, newTestRouter(svc), http.MethodGet, "/tasks/task-1", "")

			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedStatus == http.StatusOK {
				var resp TaskResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, taskToResponse(existingTask()).Title, resp.Title)
				assert.Equal(t, "2 liters", resp.Description)
				return
			}
			assert.Equal(t, tc.expectedMsg, decodeMessage(t, w))
		})
	}
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		lookupErr      error
		updateErr      error
		expectedStatus int
		expectedMsg    string
		expectUpdate   bool
		check          func(t *testing.T, sent *domain.Task)
	}{
		{
			name:           "change title",
			body:           `{"title":"Buy oat milk"}`,
			expectedStatus: http.StatusOK,
			expectUpdate:   true,
			check: func(t *testing.T, sent *domain.Task) {
				assert.Equal(t, "Buy oat milk", sent.Title)
				assert.Equal(t, "2 liters", sent.Description)
				assert.Equal(t, domain.TaskStatePending, sent.State)
			},
		},
		{
			name:           "change several fields",
			body:           `{"description":"1 liter","state":"complete"}`,
			expectedStatus: http.StatusOK,
			expectUpdate:   true,
			check: func(t *testing.T, sent *domain.Task) {
				assert.Equal(t, "Buy milk", sent.Title)
				assert.Equal(t, "1 liter", sent.Description)
				assert.Equal(t, domain.TaskStateComplete, sent.State)
				assert.Equal(t, "task-1", sent.ID)
				assert.True(t, fixedTime.Equal(sent.CreatedAt))
			},
		},
		{
			name:           "empty body leaves task unchanged",
			body:           "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown fields only",
			body:           `{"priority":"high"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found before validation",
			body:           `{"title":""}`,
			lookupErr:      store.ErrTaskNotFound,
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "task with id=task-1 was not found",
		},
		{
			name:           "empty title",
			body:           `{"title":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgTitleInvalid,
		},
		{
			name:           "null title",
			body:           `{"title":null}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgTitleInvalid,
		},
		{
			name:           "description too long",
			body:           `{"description":"` + strings.Repeat("x", 500) + `"}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgDescriptionInvalid,
		},
		{
			name:           "state is case sensitive",
			body:           `{"state":"COMPLETE"}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgStateInvalid,
		},
		{
			name:           "title reported before description and state",
			body:           `{"state":"done","description":"","title":7}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgTitleInvalid,
		},
		{
			name:           "description reported before state",
			body:           `{"state":"done","description":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgDescriptionInvalid,
		},
		{
			name:           "malformed json",
			body:           `[`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    msgInvalidBody,
		},
		{
			name:           "lookup failure",
			body:           `{"title":"x"}`,
			lookupErr:      errors.New("i/o timeout"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    msgUpdateFailed,
		},
		{
			name:           "update failure",
			body:           `{"title":"x"}`,
			updateErr:      errors.New("i/o timeout"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    msgUpdateFailed,
			expectUpdate:   true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var sent *domain.Task
			svc := &mocks.MockTaskService{
				GetTaskByIDFn: func(_ context.Context, _ string) (*domain.Task, error) {
					if tc.lookupErr != nil {
						return nil, tc.lookupErr
					}
					return existingTask(), nil
				},
				UpdateTaskFn: func(_ context.Context, task *domain.Task) (*domain.Task, error) {
					sent = task
					if tc.updateErr != nil {
						return nil, tc.updateErr
					}
					return task, nil
				},
			}

			w := doRequest(t, newTestRouter(svc), http.MethodPut, "/tasks/task-1", tc.body)

			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectUpdate {
				assert.Equal(t, 1, svc.Calls("UpdateTask"))
			} else {
				assert.Zero(t, svc.Calls("UpdateTask"))
			}
			if tc.check != nil {
				require.NotNil(t, sent)
				tc.check(t, sent)
			}

			if tc.expectedStatus == http.StatusOK {
				var resp TaskResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "task-1", resp.ID)
				if !tc.expectUpdate {
					assert.Equal(t, taskToResponse(existingTask()).Title, resp.Title)
					assert.Equal(t, "pending", resp.State)
				}
				return
			}
			assert.Equal(t, tc.expectedMsg, decodeMessage(t, w))
		})
	}
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		lookupErr      error
		deleteErr      error
		expectedStatus int
		expectedMsg    string
		expectDelete   bool
	}{
		{"deleted", nil, nil, http.StatusOK, "task with id=task-1 was deleted", true},
		{"not found", store.ErrTaskNotFound, nil, http.StatusNotFound, "task with id=task-1 was not found", false},
		{"lookup failure", errors.New("reset"), nil, http.StatusInternalServerError, msgDeleteFailed, false},
		{"delete failure", nil, errors.New("reset"), http.StatusInternalServerError, msgDeleteFailed, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := &mocks.MockTaskService{
				GetTaskByIDFn: func(_ context.Context, _ string) (*domain.Task, error) {
					if tc.lookupErr != nil {
						return nil, tc.lookupErr
					}
					return existingTask(), nil
				},
				DeleteTaskFn: func(_ context.Context, id string) error {
					assert.Equal(t, "task-1", id)
					return tc.deleteErr
				},
			}

			w := doRequest(t, newTestRouter(svc), http.MethodDelete, "/tasks/task-1", "")

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, tc.expectedMsg, decodeMessage(t, w))
			if tc.expectDelete {
				assert.Equal(t, 1, svc.Calls("DeleteTask"))
			} else {
				assert.Zero(t, svc.Calls("DeleteTask"))
			}
		})
	}
}

func TestSystemRoutes(t *testing.T) {
	t.Parallel()
	router := newTestRouter(&mocks.MockTaskService{})

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{"test route", http.MethodGet, "/test", http.StatusOK, "Hello, test route!"},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound, "Sorry, can't find that!"},
		{"unknown nested path", http.MethodGet, "/tasks/a/b", http.StatusNotFound, "Sorry, can't find that!"},
		{"unsupported method", http.MethodPatch, "/tasks/task-1", http.StatusNotFound, "Sorry, can't find that!"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := doRequest(t, router, tc.method, tc.path, "")
			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, tc.expectedBody, w.Body.String())
			assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		})
	}
}

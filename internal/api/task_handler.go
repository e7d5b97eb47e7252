package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
// If logger is nil, a default logger will be used.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: handlers cannot operate without their service
		panic("taskService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// Routes registers the task endpoints on r.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateTask)
	r.Get("/", h.ListTasks)
	r.Get("/{id}", h.GetTask)
	r.Put("/{id}", h.UpdateTask)
	r.Delete("/{id}", h.DeleteTask)
}

// CreateTask handles POST /tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	body, err := shared.DecodeJSONObject(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidBody, err)
		return
	}

	draft, err := parseCreateTask(body)
	if err != nil {
		shared.RespondWithMessage(w, r, http.StatusBadRequest, createMessage(validationField(err)))
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), draft.Title, draft.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgCreateFailed, err)
		return
	}

	log.Info("task created", slog.String("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListTasks handles GET /tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.GetAllTasks(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgListFailed, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask handles GET /tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, ok := h.lookupTask(w, r, id, msgGetFailed)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{id} requests.
// Existence is checked before the body is read.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id := chi.URLParam(r, "id")

	existing, ok := h.lookupTask(w, r, id, msgUpdateFailed)
	if !ok {
		return
	}

	body, err := shared.DecodeJSONObject(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidBody, err)
		return
	}

	patch, err := parseTaskPatch(body)
	if err != nil {
		shared.RespondWithMessage(w, r, http.StatusBadRequest, updateMessage(validationField(err)))
		return
	}

	if patch.empty() {
		shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(existing))
		return
	}

	updated, err := h.taskService.UpdateTask(r.Context(), patch.apply(existing))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgUpdateFailed, err)
		return
	}

	log.Info("task updated", slog.String("task_id", updated.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(updated))
}

// DeleteTask handles DELETE /tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id := chi.URLParam(r, "id")

	if _, ok := h.lookupTask(w, r, id, msgDeleteFailed); !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgDeleteFailed, err)
		return
	}

	log.Info("task deleted", slog.String("task_id", id))
	shared.RespondWithMessage(w, r, http.StatusOK, deletedMessage(id))
}

// lookupTask fetches a task and writes the not-found or failure response
// itself when it cannot. The boolean reports whether the caller may continue.
func (h *TaskHandler) lookupTask(
	w http.ResponseWriter,
	r *http.Request,
	id string,
	failureMessage string,
) (*domain.Task, bool) {
	task, err := h.taskService.GetTaskByID(r.Context(), id)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusNotFound {
			shared.RespondWithMessage(w, r, http.StatusNotFound, notFoundMessage(id))
			return nil, false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, failureMessage, err)
		return nil, false
	}
	return task, true
}

// validationField extracts the failing field name from a validation error.
func validationField(err error) string {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Field
	}
	return ""
}

package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskRepository defines the repository interface for the service layer.
// It is aligned with store.TaskStore so any store can be injected directly.
type TaskRepository interface {
	store.TaskStore
}

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask builds a draft from title and description and stores it
	CreateTask(ctx context.Context, title, description string) (*domain.Task, error)

	// GetAllTasks returns every stored task
	GetAllTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTaskByID retrieves a task by its ID.
	// Returns store.ErrTaskNotFound if the task does not exist.
	GetTaskByID(ctx context.Context, id string) (*domain.Task, error)

	// UpdateTask persists the mutable fields of task
	UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// DeleteTask removes a task by its ID
	DeleteTask(ctx context.Context, id string) error
}

// taskServiceImpl implements the TaskService interface.
// Every method forwards to the repository and returns its errors unchanged.
type taskServiceImpl struct {
	taskRepo TaskRepository
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the repository is nil.
func NewTaskService(taskRepo TaskRepository, logger *slog.Logger) (TaskService, error) {
	if taskRepo == nil {
		return nil, NewServiceError("task", "create_service", "taskRepo cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskRepo: taskRepo,
		logger:   logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	title, description string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskRepo.Create(ctx, domain.TaskDraft{
		Title:       title,
		Description: description,
	})
	if err != nil {
		log.Debug("repository failed to create task", slog.String("error", redact.Error(err)))
		return nil, err
	}

	log.Debug("task created", slog.String("task_id", task.ID))
	return task, nil
}

// GetAllTasks implements TaskService.GetAllTasks
func (s *taskServiceImpl) GetAllTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.taskRepo.GetAll(ctx)
}

// GetTaskByID implements TaskService.GetTaskByID
func (s *taskServiceImpl) GetTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	updated, err := s.taskRepo.Update(ctx, task)
	if err != nil {
		log.Debug("repository failed to update task", slog.String("error", redact.Error(err)))
		return nil, err
	}

	log.Debug("task updated", slog.String("task_id", updated.ID))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		log.Debug("repository failed to delete task", slog.String("error", redact.Error(err)))
		return err
	}

	log.Debug("task deleted", slog.String("task_id", id))
	return nil
}

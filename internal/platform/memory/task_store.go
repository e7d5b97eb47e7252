package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskStore implements the store.TaskStore interface with an in-memory map.
// Tasks are kept in insertion order. Values are copied on the way in and out
// so callers never share memory with the store.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[string]*domain.Task
	order  []string
	now    func() time.Time
	logger *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty in-memory task store, optionally seeded with
// existing tasks. Seed tasks are stored as given, keyed by their ID.
// If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger, seed ...*domain.Task) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	s := &TaskStore{
		tasks:  make(map[string]*domain.Task, len(seed)),
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
	for _, t := range seed {
		if t == nil {
			continue
		}
		s.put(t.Clone())
	}
	return s
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		State:       domain.TaskStatePending,
		CreatedAt:   s.now(),
	}

	s.mu.Lock()
	s.put(task)
	s.mu.Unlock()

	log.Debug("task created", slog.String("task_id", task.ID))
	return task.Clone(), nil
}

// GetAll implements store.TaskStore.GetAll
func (s *TaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.Task, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.tasks[id].Clone())
	}
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return task.Clone(), nil
}

// Update implements store.TaskStore.Update
// The entry is overwritten unconditionally; the ID does not have to exist.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, store.NewStoreError("task", "update", "task cannot be nil", store.ErrInvalidEntity)
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	stored := task.Clone()

	s.mu.Lock()
	s.put(stored)
	s.mu.Unlock()

	log.Debug("task updated",
		slog.String("task_id", stored.ID),
		slog.String("state", string(stored.State)))
	return stored.Clone(), nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return nil
	}
	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	log.Debug("task deleted", slog.String("task_id", id))
	return nil
}

// put stores t, appending its ID to the order if it is new. Caller holds mu.
func (s *TaskStore) put(t *domain.Task) {
	if _, exists := s.tasks[t.ID]; !exists {
		s.order = append(s.order, t.ID)
	}
	s.tasks[t.ID] = t
}

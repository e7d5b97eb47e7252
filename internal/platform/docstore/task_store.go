package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// Document field names used for stored tasks.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldState       = "state"
	fieldCreatedAt   = "createdAt"
)

// TaskStore implements the store.TaskStore interface over a Collection.
type TaskStore struct {
	collection Collection
	now        func() time.Time
	logger     *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore backed by the given collection.
// If logger is nil, a default logger will be used.
func NewTaskStore(collection Collection, logger *slog.Logger) *TaskStore {
	if collection == nil {
		// ALLOW-PANIC: a store without a collection cannot serve any request
		panic("collection cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		collection: collection,
		now:        time.Now,
		logger:     logger.With(slog.String("component", "document_task_store")),
	}
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Millisecond precision matches what a read returns.
	createdAt := time.UnixMilli(s.now().UnixMilli()).UTC()

	task := &domain.Task{
		Title:       draft.Title,
		Description: draft.Description,
		State:       domain.TaskStatePending,
		CreatedAt:   createdAt,
	}

	id, err := s.collection.Add(ctx, Document{
		fieldTitle:       task.Title,
		fieldDescription: task.Description,
		fieldState:       string(task.State),
		fieldCreatedAt:   createdAt.UnixMilli(),
	})
	if err != nil {
		return nil, store.NewStoreError("task", "create", "failed to add document", err)
	}
	task.ID = id

	log.Debug("task document created", slog.String("task_id", id))
	return task, nil
}

// GetAll implements store.TaskStore.GetAll
func (s *TaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	snapshots, err := s.collection.List(ctx)
	if err != nil {
		return nil, store.NewStoreError("task", "list", "failed to list documents", err)
	}

	tasks := make([]*domain.Task, 0, len(snapshots))
	for _, snap := range snapshots {
		task, err := decodeTask(snap.ID, snap.Data)
		if err != nil {
			return nil, store.NewStoreError("task", "list", "failed to decode document", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	doc, err := s.collection.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", "failed to get document", err)
	}

	task, err := decodeTask(id, doc)
	if err != nil {
		return nil, store.NewStoreError("task", "get", "failed to decode document", err)
	}
	return task, nil
}

// Update implements store.TaskStore.Update
// Only the mutable fields are written; the given task is returned as-is.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, store.NewStoreError("task", "update", "task cannot be nil", store.ErrInvalidEntity)
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.collection.Update(ctx, task.ID, Document{
		fieldTitle:       task.Title,
		fieldDescription: task.Description,
		fieldState:       string(task.State),
	})
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, store.NewStoreError("task", "update", "document does not exist", store.ErrTaskNotFound)
		}
		return nil, store.NewStoreError("task", "update", "failed to update document", err)
	}

	log.Debug("task document updated", slog.String("task_id", task.ID))
	return task.Clone(), nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	if err := s.collection.Delete(ctx, id); err != nil {
		return store.NewStoreError("task", "delete", "failed to delete document", err)
	}
	return nil
}

// decodeTask builds a Task from a stored document.
func decodeTask(id string, doc Document) (*domain.Task, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document %s is empty", ErrMalformedDocument, id)
	}

	title, err := stringField(doc, fieldTitle)
	if err != nil {
		return nil, err
	}
	description, err := stringField(doc, fieldDescription)
	if err != nil {
		return nil, err
	}
	state, err := stringField(doc, fieldState)
	if err != nil {
		return nil, err
	}
	if !domain.TaskState(state).IsValid() {
		return nil, fmt.Errorf("%w: %w: %q", ErrMalformedDocument, domain.ErrInvalidTaskState, state)
	}
	millis, err := epochMillisField(doc, fieldCreatedAt)
	if err != nil {
		return nil, err
	}

	return &domain.Task{
		ID:          id,
		Title:       title,
		Description: description,
		State:       domain.TaskState(state),
		CreatedAt:   time.UnixMilli(millis).UTC(),
	}, nil
}

func stringField(doc Document, name string) (string, error) {
	v, ok := doc[name]
	if !ok {
		return "", fmt.Errorf("%w: missing field %s", ErrMalformedDocument, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %s is %T, not string", ErrMalformedDocument, name, v)
	}
	return s, nil
}

// epochMillisField reads a numeric field. Backends decode numbers
// differently, so every integer and float kind is accepted.
func epochMillisField(doc Document, name string) (int64, error) {
	v, ok := doc[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing field %s", ErrMalformedDocument, name)
	}

	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			break
		}
		return int64(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			break
		}
		return int64(n), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), nil
		}
	}
	return 0, fmt.Errorf("%w: field %s is not an epoch value: %v", ErrMalformedDocument, name, v)
}

package store

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every implementation exclusively owns its backing storage.
type TaskStore interface {
	// Create stores a new task built from the draft.
	// The store assigns the ID, sets State to pending and stamps CreatedAt.
	Create(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error)

	// GetAll returns every stored task. An empty store yields an empty,
	// non-nil slice.
	GetAll(ctx context.Context) ([]*domain.Task, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist; this is the
	// absent marker and never signals a storage failure.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// Update persists the mutable fields (Title, Description, State) of the
	// given task, keyed by its ID, and returns the stored value.
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Delete removes a task by its ID. Deleting an absent ID is a no-op;
	// callers check existence first when they need to report it.
	Delete(ctx context.Context, id string) error
}

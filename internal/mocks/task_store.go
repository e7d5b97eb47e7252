package mocks

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	CreateFn  func(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error)
	GetAllFn  func(ctx context.Context) ([]*domain.Task, error)
	GetByIDFn func(ctx context.Context, id string) (*domain.Task, error)
	UpdateFn  func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	DeleteFn  func(ctx context.Context, id string) error

	// DefaultError is returned by any method without a custom function
	DefaultError error
}

// Create implements store.TaskStore.Create
func (m *MockTaskStore) Create(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, draft)
	}
	return nil, m.DefaultError
}

// GetAll implements store.TaskStore.GetAll
func (m *MockTaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(ctx)
	}
	return []*domain.Task{}, m.DefaultError
}

// GetByID implements store.TaskStore.GetByID
func (m *MockTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, m.DefaultError
}

// Update implements store.TaskStore.Update
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return task, m.DefaultError
}

// Delete implements store.TaskStore.Delete
func (m *MockTaskStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

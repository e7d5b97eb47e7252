package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	CreateTaskFn  func(ctx context.Context, title, description string) (*domain.Task, error)
	GetAllTasksFn func(ctx context.Context) ([]*domain.Task, error)
	GetTaskByIDFn func(ctx context.Context, id string) (*domain.Task, error)
	UpdateTaskFn  func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	DeleteTaskFn  func(ctx context.Context, id string) error

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockTaskService) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Calls returns how many times the named method was invoked
func (m *MockTaskService) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(ctx context.Context, title, description string) (*domain.Task, error) {
	m.record("CreateTask")
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, title, description)
	}
	return m.Task, m.DefaultError
}

// GetAllTasks implements the TaskService.GetAllTasks method
func (m *MockTaskService) GetAllTasks(ctx context.Context) ([]*domain.Task, error) {
	m.record("GetAllTasks")
	if m.GetAllTasksFn != nil {
		return m.GetAllTasksFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// GetTaskByID implements the TaskService.GetTaskByID method
func (m *MockTaskService) GetTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	m.record("GetTaskByID")
	if m.GetTaskByIDFn != nil {
		return m.GetTaskByIDFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// UpdateTask implements the TaskService.UpdateTask method
func (m *MockTaskService) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	m.record("UpdateTask")
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, task)
	}
	return m.Task, m.DefaultError
}

// DeleteTask implements the TaskService.DeleteTask method
func (m *MockTaskService) DeleteTask(ctx context.Context, id string) error {
	m.record("DeleteTask")
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.DefaultError
}

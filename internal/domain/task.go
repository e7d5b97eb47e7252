package domain

import (
	"time"
)

// TaskState represents the completion state of a task
type TaskState string

// Possible task state values
const (
	TaskStatePending  TaskState = "pending"
	TaskStateComplete TaskState = "complete"
)

// Field length limits for task text fields. Values must be strictly shorter.
const (
	TitleMaxLength       = 100
	DescriptionMaxLength = 500
)

// Task is the single resource managed by the API.
// It is a plain data structure; field constraints are enforced by the
// HTTP layer before anything reaches a store.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       TaskState `json:"state"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskDraft holds the client-supplied fields used to create a task.
// Stores attach the ID, State and CreatedAt fields.
type TaskDraft struct {
	Title       string
	Description string
}

// IsValid reports whether s is one of the known task states.
func (s TaskState) IsValid() bool {
	switch s {
	case TaskStatePending, TaskStateComplete:
		return true
	default:
		return false
	}
}

// Clone returns a copy of the task, or nil for a nil task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

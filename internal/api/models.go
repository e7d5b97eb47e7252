package api

import (
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskListResponse wraps the full task collection
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		State:       string(task.State),
		CreatedAt:   task.CreatedAt,
	}
}

// tasksToResponse converts tasks to a TaskListResponse. The list is never nil,
// so an empty collection encodes as [].
func tasksToResponse(tasks []*domain.Task) TaskListResponse {
	resp := TaskListResponse{Tasks: make([]TaskResponse, 0, len(tasks))}
	for _, task := range tasks {
		if task == nil {
			continue
		}
		resp.Tasks = append(resp.Tasks, taskToResponse(task))
	}
	return resp
}

package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskToResponse(t *testing.T) {
	createdAt := time.Date(2025, time.March, 9, 8, 7, 6, 5_000_000, time.UTC)
	task := &domain.Task{
		ID:          "abc",
		Title:       "Write report",
		Description: "quarterly",
		State:       domain.TaskStateComplete,
		CreatedAt:   createdAt,
	}

	data, err := json.Marshal(taskToResponse(task))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "abc",
		"title": "Write report",
		"description": "quarterly",
		"state": "complete",
		"createdAt": "2025-03-09T08:07:06.005Z"
	}`, string(data))
}

func TestTasksToResponse(t *testing.T) {
	t.Run("nil slice encodes as empty list", func(t *testing.T) {
		data, err := json.Marshal(tasksToResponse(nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"tasks":[]}`, string(data))
	})

	t.Run("keeps order and skips nil entries", func(t *testing.T) {
		resp := tasksToResponse([]*domain.Task{
			{ID: "1", State: domain.TaskStatePending},
			nil,
			{ID: "2", State: domain.TaskStateComplete},
		})

		require.Len(t, resp.Tasks, 2)
		assert.Equal(t, "1", resp.Tasks[0].ID)
		assert.Equal(t, "2", resp.Tasks[1].ID)
		assert.Equal(t, "complete", resp.Tasks[1].State)
	})
}

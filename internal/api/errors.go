package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/store"
)

// Fixed messages returned for unexpected failures. Error details never reach the client.
const (
	msgCreateFailed = "Error creating task"
	msgListFailed   = "Error getting tasks"
	msgGetFailed    = "Error getting task"
	msgUpdateFailed = "Error updating task"
	msgDeleteFailed = "Error deleting task"
	msgInvalidBody  = "invalid request body"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func notFoundMessage(id string) string {
	return fmt.Sprintf("task with id=%s was not found", id)
}

func deletedMessage(id string) string {
	return fmt.Sprintf("task with id=%s was deleted", id)
}

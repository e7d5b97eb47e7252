package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "ErrTaskNotFound",
			err:      ErrTaskNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrTaskNotFound",
			err:      fmt.Errorf("failed to find task: %w", ErrTaskNotFound),
			expected: true,
		},
		{
			name:     "ErrDuplicate",
			err:      ErrDuplicate,
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsNotFoundError(tc.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection refused")

	t.Run("with wrapped error", func(t *testing.T) {
		err := NewStoreError("task", "create", "failed to insert document", cause)

		assert.Equal(t,
			"create operation on task failed: failed to insert document: connection refused",
			err.Error())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("task", "get", "document is empty", nil)

		assert.Equal(t, "get operation on task failed: document is empty", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})

	t.Run("errors.As", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", NewStoreError("task", "update", "boom", ErrTaskNotFound))

		var storeErr *StoreError
		assert.True(t, errors.As(wrapped, &storeErr))
		assert.Equal(t, "update", storeErr.Operation)
		assert.True(t, IsNotFoundError(wrapped))
	})
}

package sqldoc_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskboard-api/internal/platform/sqldoc"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, store.ErrDuplicate},
		{"check violation", &pgconn.PgError{Code: "23514", ConstraintName: "documents_data_object_check"}, store.ErrInvalidEntity},
		{"not null violation", &pgconn.PgError{Code: "23502", ColumnName: "data"}, store.ErrInvalidEntity},
		{"bad json", &pgconn.PgError{Code: "22P02"}, store.ErrInvalidEntity},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), store.ErrDuplicate},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := sqldoc.MapError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "original error must stay wrapped")
		})
	}

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, sqldoc.MapError(nil))
	})

	t.Run("unmapped error passes through", func(t *testing.T) {
		t.Parallel()
		orig := errors.New("connection reset")
		assert.Same(t, orig, sqldoc.MapError(orig))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()
	assert.True(t, sqldoc.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, sqldoc.IsUniqueViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, sqldoc.IsUniqueViolation(nil))
}

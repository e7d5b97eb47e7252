package sqldoc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/taskboard-api/internal/platform/docstore"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// maxAddAttempts bounds retries when a generated ID collides with an existing one.
const maxAddAttempts = 3

// Collection implements docstore.Collection over the documents table.
type Collection struct {
	db      store.DBTX
	name    string
	queries queries
	newID   docstore.IDGenerator
	logger  *slog.Logger
}

// Ensure Collection implements docstore.Collection interface
var _ docstore.Collection = (*Collection)(nil)

// NewCollection creates a collection named name in the documents table.
// db may be a *sql.DB or a *sql.Tx. If logger is nil, a default logger will be used.
func NewCollection(db store.DBTX, dialect Dialect, name string, logger *slog.Logger) *Collection {
	if db == nil {
		// ALLOW-PANIC: a collection without a database cannot serve any request
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Collection{
		db:      db,
		name:    name,
		queries: dialect.queries(),
		newID:   docstore.MustIDGenerator(),
		logger: logger.With(
			slog.String("component", "sql_collection"),
			slog.String("collection", name),
		),
	}
}

// Add implements docstore.Collection.Add
func (c *Collection) Add(ctx context.Context, doc docstore.Document) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	data, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}

	for attempt := 1; ; attempt++ {
		id := c.newID()
		_, err = c.db.ExecContext(ctx, c.queries.insert, c.name, id, data)
		if err == nil {
			log.Debug("document inserted", slog.String("document_id", id))
			return id, nil
		}

		err = MapError(err)
		if !errors.Is(err, store.ErrDuplicate) || attempt == maxAddAttempts {
			return "", fmt.Errorf("failed to insert document: %w", err)
		}
		log.Warn("generated document id collided, retrying", slog.Int("attempt", attempt))
	}
}

// Get implements docstore.Collection.Get
func (c *Collection) Get(ctx context.Context, id string) (docstore.Document, error) {
	var data string
	err := c.db.QueryRowContext(ctx, c.queries.get, c.name, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, docstore.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", MapError(err))
	}
	return decodeDocument(data)
}

// List implements docstore.Collection.List
func (c *Collection) List(ctx context.Context) ([]docstore.Snapshot, error) {
	rows, err := c.db.QueryContext(ctx, c.queries.list, c.name)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			c.logger.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	snapshots := make([]docstore.Snapshot, 0)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", MapError(err))
		}
		doc, err := decodeDocument(data)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", id, err)
		}
		snapshots = append(snapshots, docstore.Snapshot{ID: id, Data: doc})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", MapError(err))
	}
	return snapshots, nil
}

// Update implements docstore.Collection.Update
func (c *Collection) Update(ctx context.Context, id string, fields docstore.Document) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	patch, err := encodeDocument(fields)
	if err != nil {
		return err
	}

	result, err := c.db.ExecContext(ctx, c.queries.update, c.name, id, patch)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", MapError(err))
	}
	if err := checkRowsAffected(result); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return docstore.ErrDocumentNotFound
		}
		return err
	}

	log.Debug("document updated", slog.String("document_id", id))
	return nil
}

// Delete implements docstore.Collection.Delete
func (c *Collection) Delete(ctx context.Context, id string) error {
	if _, err := c.db.ExecContext(ctx, c.queries.delete, c.name, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", MapError(err))
	}
	return nil
}

func encodeDocument(doc docstore.Document) (string, error) {
	if doc == nil {
		doc = docstore.Document{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode document: %v", store.ErrInvalidEntity, err)
	}
	return string(data), nil
}

// decodeDocument keeps numbers as json.Number so integer values survive intact.
func decodeDocument(data string) (docstore.Document, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	var doc docstore.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", docstore.ErrMalformedDocument, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", docstore.ErrMalformedDocument)
	}
	return doc, nil
}

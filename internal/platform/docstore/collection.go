package docstore

import (
	"context"
	"errors"
)

// Document is the schemaless body of a stored document.
type Document = map[string]any

// Snapshot is a document together with its ID, as returned by List.
type Snapshot struct {
	ID   string
	Data Document
}

var (
	// ErrDocumentNotFound is returned by Get and Update when no document
	// with the given ID exists in the collection.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrMalformedDocument is returned when a stored document cannot be
	// decoded into the expected shape.
	ErrMalformedDocument = errors.New("malformed document")
)

// Collection is a named set of documents in an external store.
type Collection interface {
	// Add stores doc under a newly generated ID and returns that ID.
	Add(ctx context.Context, doc Document) (string, error)

	// Get returns the document with the given ID or ErrDocumentNotFound.
	Get(ctx context.Context, id string) (Document, error)

	// List returns every document in insertion order.
	List(ctx context.Context) ([]Snapshot, error)

	// Update merges fields into the existing document.
	// Returns ErrDocumentNotFound if the document does not exist.
	Update(ctx context.Context, id string, fields Document) error

	// Delete removes the document. Deleting an absent ID is a no-op.
	Delete(ctx context.Context, id string) error
}

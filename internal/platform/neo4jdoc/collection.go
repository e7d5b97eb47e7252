package neo4jdoc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/phrazzld/taskboard-api/internal/platform/docstore"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// maxAddAttempts bounds retries when a generated ID collides with an existing one.
const maxAddAttempts = 3

const (
	addQuery = "OPTIONAL MATCH (existing:Document {collection: $collection, id: $id}) " +
		"WITH existing WHERE existing IS NULL " +
		"MERGE (s:DocumentSequence {collection: $collection}) " +
		"ON CREATE SET s.value = 0 " +
		"SET s.value = s.value + 1 " +
		"CREATE (d:Document {collection: $collection, id: $id, data: $data, seq: s.value}) " +
		"RETURN d.id AS id"

	getQuery = "MATCH (d:Document {collection: $collection, id: $id}) " +
		"RETURN d.data AS data"

	listQuery = "MATCH (d:Document {collection: $collection}) " +
		"RETURN d.id AS id, d.data AS data ORDER BY d.seq"

	setDataQuery = "MATCH (d:Document {collection: $collection, id: $id}) " +
		"SET d.data = $data"

	deleteQuery = "MATCH (d:Document {collection: $collection, id: $id}) " +
		"DETACH DELETE d"
)

// Collection implements docstore.Collection on a Neo4j driver.
type Collection struct {
	driver   neo4j.DriverWithContext
	database string
	name     string
	newID    docstore.IDGenerator
	logger   *slog.Logger
}

// Ensure Collection implements docstore.Collection interface
var _ docstore.Collection = (*Collection)(nil)

// NewCollection creates a collection stored in database (empty for the server default).
// If logger is nil, a default logger will be used.
func NewCollection(driver neo4j.DriverWithContext, database, name string, logger *slog.Logger) *Collection {
	if driver == nil {
		// ALLOW-PANIC: a collection without a driver cannot serve any request
		panic("neo4j driver cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Collection{
		driver:   driver,
		database: database,
		name:     name,
		newID:    docstore.MustIDGenerator(),
		logger: logger.With(
			slog.String("component", "neo4j_collection"),
			slog.String("collection", name),
		),
	}
}

func (c *Collection) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: c.database,
	})
}

func (c *Collection) closeSession(ctx context.Context, session neo4j.SessionWithContext) {
	if err := session.Close(ctx); err != nil {
		c.logger.Warn("failed to close neo4j session", slog.String("error", err.Error()))
	}
}

// Add implements docstore.Collection.Add
func (c *Collection) Add(ctx context.Context, doc docstore.Document) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	data, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}

	session := c.session(ctx, neo4j.AccessModeWrite)
	defer c.closeSession(ctx, session)

	for attempt := 1; attempt <= maxAddAttempts; attempt++ {
		id := c.newID()

		created, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			res, err := tx.Run(ctx, addQuery, map[string]any{
				"collection": c.name,
				"id":         id,
				"data":       data,
			})
			if err != nil {
				return false, err
			}
			found := res.Next(ctx)
			if err := res.Err(); err != nil {
				return false, err
			}
			return found, nil
		})
		if err != nil {
			return "", fmt.Errorf("failed to add document: %w", err)
		}
		if created.(bool) {
			log.Debug("document added", slog.String("document_id", id))
			return id, nil
		}
		log.Warn("generated document id collided, retrying", slog.Int("attempt", attempt))
	}
	return "", fmt.Errorf("failed to add document: no unique id after %d attempts", maxAddAttempts)
}

// Get implements docstore.Collection.Get
func (c *Collection) Get(ctx context.Context, id string) (docstore.Document, error) {
	session := c.session(ctx, neo4j.AccessModeRead)
	defer c.closeSession(ctx, session)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return c.readData(ctx, tx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	data, _ := result.(string)
	if data == "" {
		return nil, docstore.ErrDocumentNotFound
	}
	return decodeDocument(data)
}

// List implements docstore.Collection.List
func (c *Collection) List(ctx context.Context) ([]docstore.Snapshot, error) {
	session := c.session(ctx, neo4j.AccessModeRead)
	defer c.closeSession(ctx, session)

	type row struct{ id, data string }

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, listQuery, map[string]any{"collection": c.name})
		if err != nil {
			return nil, err
		}

		var rows []row
		for res.Next(ctx) {
			record := res.Record()
			id, _ := record.Get("id")
			data, _ := record.Get("data")
			idStr, ok1 := id.(string)
			dataStr, ok2 := data.(string)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("%w: unexpected node properties", docstore.ErrMalformedDocument)
			}
			rows = append(rows, row{id: idStr, data: dataStr})
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	rows, _ := result.([]row)
	snapshots := make([]docstore.Snapshot, 0, len(rows))
	for _, r := range rows {
		doc, err := decodeDocument(r.data)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", r.id, err)
		}
		snapshots = append(snapshots, docstore.Snapshot{ID: r.id, Data: doc})
	}
	return snapshots, nil
}

// Update implements docstore.Collection.Update
// The read and the write run in one write transaction.
func (c *Collection) Update(ctx context.Context, id string, fields docstore.Document) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	session := c.session(ctx, neo4j.AccessModeWrite)
	defer c.closeSession(ctx, session)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		data, err := c.readData(ctx, tx, id)
		if err != nil || data == "" {
			return false, err
		}

		doc, err := decodeDocument(data)
		if err != nil {
			return false, err
		}
		for k, v := range fields {
			doc[k] = v
		}
		merged, err := encodeDocument(doc)
		if err != nil {
			return false, err
		}

		res, err := tx.Run(ctx, setDataQuery, map[string]any{
			"collection": c.name,
			"id":         id,
			"data":       merged,
		})
		if err != nil {
			return false, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if updated, _ := result.(bool); !updated {
		return docstore.ErrDocumentNotFound
	}

	log.Debug("document updated", slog.String("document_id", id))
	return nil
}

// Delete implements docstore.Collection.Delete
func (c *Collection) Delete(ctx context.Context, id string) error {
	session := c.session(ctx, neo4j.AccessModeWrite)
	defer c.closeSession(ctx, session)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, deleteQuery, map[string]any{
			"collection": c.name,
			"id":         id,
		})
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// readData returns the JSON body of a document, or "" when it does not exist.
func (c *Collection) readData(ctx context.Context, tx neo4j.ManagedTransaction, id string) (string, error) {
	res, err := tx.Run(ctx, getQuery, map[string]any{
		"collection": c.name,
		"id":         id,
	})
	if err != nil {
		return "", err
	}
	if !res.Next(ctx) {
		return "", res.Err()
	}

	raw, _ := res.Record().Get("data")
	data, ok := raw.(string)
	if !ok || data == "" {
		return "", fmt.Errorf("%w: document %s has no data", docstore.ErrMalformedDocument, id)
	}
	return data, nil
}

func encodeDocument(doc docstore.Document) (string, error) {
	if doc == nil {
		doc = docstore.Document{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(data), nil
}

// decodeDocument keeps numbers as json.Number so integer values survive intact.
func decodeDocument(data string) (docstore.Document, error) {
	dec := json.NewDecoder(bytes.NewBufferString(data))
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

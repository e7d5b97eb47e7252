package redisdoc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/taskboard-api/internal/platform/docstore"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/redis/go-redis/v9"
)

const (
	// maxAddAttempts bounds retries when a generated ID collides with an existing one.
	maxAddAttempts = 3

	// maxUpdateAttempts bounds optimistic transaction retries when a watched key changes.
	maxUpdateAttempts = 5
)

// Collection implements docstore.Collection on a Redis client.
type Collection struct {
	client redis.UniversalClient
	prefix string
	name   string
	newID  docstore.IDGenerator
	logger *slog.Logger
}

// Ensure Collection implements docstore.Collection interface
var _ docstore.Collection = (*Collection)(nil)

// NewCollection creates a collection whose keys start with prefix:name.
// If logger is nil, a default logger will be used.
func NewCollection(client redis.UniversalClient, prefix, name string, logger *slog.Logger) *Collection {
	if client == nil {
		// ALLOW-PANIC: a collection without a client cannot serve any request
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Collection{
		client: client,
		prefix: prefix,
		name:   name,
		newID:  docstore.MustIDGenerator(),
		logger: logger.With(
			slog.String("component", "redis_collection"),
			slog.String("collection", name),
		),
	}
}

// indexKey is the sorted set holding document IDs in insertion order.
func (c *Collection) indexKey() string {
	return joinKey(c.prefix, c.name)
}

func (c *Collection) seqKey() string {
	return joinKey(c.prefix, c.name, "seq")
}

func (c *Collection) docKey(id string) string {
	return joinKey(c.prefix, c.name, id)
}

func joinKey(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ":")
}

// Add implements docstore.Collection.Add
func (c *Collection) Add(ctx context.Context, doc docstore.Document) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	data, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}

	seq, err := c.client.Incr(ctx, c.seqKey()).Result()
	if err != nil {
		return "", fmt.Errorf("failed to allocate sequence: %w", err)
	}

	for attempt := 1; attempt <= maxAddAttempts; attempt++ {
		id := c.newID()

		var setNX *redis.BoolCmd
		_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			setNX = pipe.SetNX(ctx, c.docKey(id), data, 0)
			pipe.ZAddNX(ctx, c.indexKey(), redis.Z{Score: float64(seq), Member: id})
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("failed to add document: %w", err)
		}
		if setNX.Val() {
			log.Debug("document added", slog.String("document_id", id))
			return id, nil
		}
		log.Warn("generated document id collided, retrying", slog.Int("attempt", attempt))
	}
	return "", fmt.Errorf("failed to add document: no unique id after %d attempts", maxAddAttempts)
}

// Get implements docstore.Collection.Get
func (c *Collection) Get(ctx context.Context, id string) (docstore.Document, error) {
	data, err := c.client.Get(ctx, c.docKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, docstore.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return decodeDocument(data)
}

// List implements docstore.Collection.List
// IDs left in the index without a document body are skipped.
func (c *Collection) List(ctx context.Context) ([]docstore.Snapshot, error) {
	ids, err := c.client.ZRange(ctx, c.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list document ids: %w", err)
	}

	snapshots := make([]docstore.Snapshot, 0, len(ids))
	if len(ids) == 0 {
		return snapshots, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.docKey(id)
	}
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	for i, v := range values {
		if v == nil {
			c.logger.Warn("index references a missing document", slog.String("document_id", ids[i]))
			continue
		}
		raw, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: document %s has type %T", docstore.ErrMalformedDocument, ids[i], v)
		}
		doc, err := decodeDocument([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", ids[i], err)
		}
		snapshots = append(snapshots, docstore.Snapshot{ID: ids[i], Data: doc})
	}
	return snapshots, nil
}

// Update implements docstore.Collection.Update
// The read-merge-write runs as a WATCH/MULTI transaction and is retried when
// the document changes underneath it.
func (c *Collection) Update(ctx context.Context, id string, fields docstore.Document) error {
	log := logger.FromContextOrDefault(ctx, c.logger)
	key := c.docKey(id)

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return docstore.ErrDocumentNotFound
			}
			return err
		}

		doc, err := decodeDocument(data)
		if err != nil {
			return err
		}
		for k, v := range fields {
			doc[k] = v
		}
		merged, err := encodeDocument(doc)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, merged, 0)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := c.client.Watch(ctx, txf, key)
		if err == nil {
			log.Debug("document updated", slog.String("document_id", id))
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, docstore.ErrDocumentNotFound) || errors.Is(err, docstore.ErrMalformedDocument) {
			return err
		}
		return fmt.Errorf("failed to update document: %w", err)
	}
	return fmt.Errorf("failed to update document: %w after %d attempts", redis.TxFailedErr, maxUpdateAttempts)
}

// Delete implements docstore.Collection.Delete
func (c *Collection) Delete(ctx context.Context, id string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.docKey(id))
		pipe.ZRem(ctx, c.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func encodeDocument(doc docstore.Document) ([]byte, error) {
	if doc == nil {
		doc = docstore.Document{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// decodeDocument keeps numbers as json.Number so integer values survive intact.
func decodeDocument(data []byte) (docstore.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
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

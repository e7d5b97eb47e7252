package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/neo4jdoc"
	"github.com/phrazzld/taskboard-api/internal/platform/redisdoc"
	"github.com/phrazzld/taskboard-api/internal/platform/sqldoc"
	"github.com/redis/go-redis/v9"
)

// setupAppDatabase establishes a connection to the SQL database backing the
// sqlite or postgres store and configures its connection pool.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, sqldoc.Dialect, error) {
	dialect, err := sqldoc.ParseDialect(cfg.Store.Backend)
	if err != nil {
		return nil, "", err
	}

	db, err := sqldoc.Open(ctx, dialect, cfg.Database.URL, logger)
	if err != nil {
		return nil, "", err
	}

	return db, dialect, nil
}

// setupAppRedis connects to the Redis server backing the redis store.
func setupAppRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	client, err := redisdoc.Open(ctx, cfg.Redis.URL, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// setupAppNeo4j connects to Neo4j and makes sure the document index exists.
func setupAppNeo4j(ctx context.Context, cfg *config.Config, logger *slog.Logger) (neo4j.DriverWithContext, error) {
	driver, err := neo4jdoc.Open(ctx, cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password, logger)
	if err != nil {
		return nil, err
	}

	if err := neo4jdoc.EnsureSchema(ctx, driver, cfg.Neo4j.Database); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to prepare neo4j schema: %w", err)
	}

	return driver, nil
}

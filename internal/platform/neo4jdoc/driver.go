package neo4jdoc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Open creates a driver for uri and verifies connectivity.
func Open(ctx context.Context, uri, username, password string, logger *slog.Logger) (neo4j.DriverWithContext, error) {
	if logger == nil {
		logger = slog.Default()
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify neo4j connectivity: %w", err)
	}

	logger.Info("neo4j connection established")
	return driver, nil
}

// EnsureSchema creates the lookup index used by every collection query.
func EnsureSchema(ctx context.Context, driver neo4j.DriverWithContext, database string) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: database,
	})
	defer func() { _ = session.Close(ctx) }()

	res, err := session.Run(ctx,
		"CREATE INDEX document_lookup IF NOT EXISTS FOR (d:Document) ON (d.collection, d.id)",
		nil,
	)
	if err == nil {
		_, err = res.Consume(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to create document index: %w", err)
	}
	return nil
}

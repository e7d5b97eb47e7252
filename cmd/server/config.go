package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig(cfgFile string) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_backend", cfg.Store.Backend)

	// Connection strings carry credentials, so only their presence is logged
	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true, "auto_migrate", cfg.Database.AutoMigrate)
	}
	if cfg.Redis.URL != "" {
		slog.Debug("Redis configuration", "url_present", true, "key_prefix", cfg.Redis.KeyPrefix)
	}
	if cfg.Neo4j.URI != "" {
		slog.Debug("Neo4j configuration", "uri_present", true, "database", cfg.Neo4j.Database)
	}

	return cfg, nil
}

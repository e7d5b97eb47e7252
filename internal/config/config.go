package config

import "time"

// Store backends selectable through store.backend.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendNeo4j    = "neo4j"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Store    StoreConfig    `mapstructure:"store" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Neo4j    Neo4jConfig    `mapstructure:"neo4j"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// RequestLogging enables one access log line per request.
	RequestLogging  bool          `mapstructure:"request_logging"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// StoreConfig selects where tasks are persisted.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory sqlite postgres redis neo4j"`
	// Collection names the document collection used by the external backends.
	Collection string `mapstructure:"collection" validate:"required,max=64"`
}

// DatabaseConfig is used by the sqlite and postgres backends. For sqlite the
// URL is a modernc DSN such as file:taskboard.db.
type DatabaseConfig struct {
	URL         string `mapstructure:"url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// RedisConfig is used by the redis backend.
type RedisConfig struct {
	URL       string `mapstructure:"url" validate:"omitempty,url"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Neo4jConfig is used by the neo4j backend.
type Neo4jConfig struct {
	URI      string `mapstructure:"uri" validate:"omitempty,uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// UsesSQL reports whether the configured backend is a database/sql one.
func (c *Config) UsesSQL() bool {
	return c.Store.Backend == BackendSQLite || c.Store.Backend == BackendPostgres
}

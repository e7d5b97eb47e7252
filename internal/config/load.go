package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TASKBOARD_SERVER_PORT.
const EnvPrefix = "TASKBOARD"

// Default values applied before the config file and environment are read.
const (
	DefaultPort            = 3000
	DefaultLogLevel        = "info"
	DefaultBackend         = BackendMemory
	DefaultCollection      = "tasks"
	DefaultRedisKeyPrefix  = "taskboard"
	DefaultNeo4jDatabase   = "neo4j"
	DefaultShutdownTimeout = 10 * time.Second
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// configFile may be empty, in which case config.yaml in the working directory
// is read when present. A .env file in the working directory is loaded into
// the environment first without overriding variables that are already set.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.request_logging", false)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)

	v.SetDefault("store.backend", DefaultBackend)
	v.SetDefault("store.collection", DefaultCollection)

	v.SetDefault("database.url", "")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.key_prefix", DefaultRedisKeyPrefix)

	v.SetDefault("neo4j.uri", "")
	v.SetDefault("neo4j.username", "")
	v.SetDefault("neo4j.password", "")
	v.SetDefault("neo4j.database", DefaultNeo4jDatabase)
}

// Validate checks field constraints and the settings the selected backend needs.
func Validate(cfg *Config) error {
	validate := validator.New()
	validate.RegisterStructValidation(validateBackend, Config{})

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// validateBackend requires the connection settings of the chosen backend.
func validateBackend(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}

	switch cfg.Store.Backend {
	case BackendSQLite, BackendPostgres:
		if strings.TrimSpace(cfg.Database.URL) == "" {
			sl.ReportError(cfg.Database.URL, "Database.URL", "URL", "required_for_backend", cfg.Store.Backend)
		}
	case BackendRedis:
		if cfg.Redis.URL == "" {
			sl.ReportError(cfg.Redis.URL, "Redis.URL", "URL", "required_for_backend", cfg.Store.Backend)
		}
	case BackendNeo4j:
		if cfg.Neo4j.URI == "" {
			sl.ReportError(cfg.Neo4j.URI, "Neo4j.URI", "URI", "required_for_backend", cfg.Store.Backend)
		}
	}
}

// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file, a .env file and TASKBOARD_ prefixed
// environment variables. Validation covers both field ranges and the
// connection settings required by the selected store backend.
package config

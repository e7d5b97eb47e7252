package sqldoc

import (
	"fmt"
	"strings"
)

// Dialect identifies the SQL database flavor behind a collection.
type Dialect string

// Supported dialects.
const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect converts a configuration value into a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported SQL dialect %q", name)
	}
}

// DriverName returns the database/sql driver name registered for the dialect.
func (d Dialect) DriverName() string {
	if d == SQLite {
		return "sqlite"
	}
	return "pgx"
}

// gooseDialect returns the name goose uses for the dialect.
func (d Dialect) gooseDialect() string {
	if d == SQLite {
		return "sqlite3"
	}
	return "postgres"
}

// queries holds the statements a collection runs. Argument order is fixed:
// insert(collection, id, data), get/delete(collection, id),
// list(collection), update(collection, id, patch).
type queries struct {
	insert string
	get    string
	list   string
	update string
	delete string
}

func (d Dialect) queries() queries {
	if d == SQLite {
		return queries{
			insert: `INSERT INTO documents (collection, id, data) VALUES (?1, ?2, ?3)`,
			get:    `SELECT data FROM documents WHERE collection = ?1 AND id = ?2`,
			list:   `SELECT id, data FROM documents WHERE collection = ?1 ORDER BY seq`,
			update: `UPDATE documents SET data = json_patch(data, ?3) WHERE collection = ?1 AND id = ?2`,
			delete: `DELETE FROM documents WHERE collection = ?1 AND id = ?2`,
		}
	}
	return queries{
		insert: `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`,
		get:    `SELECT data::text FROM documents WHERE collection = $1 AND id = $2`,
		list:   `SELECT id, data::text FROM documents WHERE collection = $1 ORDER BY seq`,
		update: `UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`,
		delete: `DELETE FROM documents WHERE collection = $1 AND id = $2`,
	}
}

// Package sqldoc provides a docstore.Collection stored in a single SQL table.
//
// Two dialects are supported: PostgreSQL through the pgx stdlib driver, where
// documents live in a JSONB column, and SQLite through the pure Go modernc
// driver, where they are JSON text. Both share the schema in migrations/,
// applied with goose.
package sqldoc

// Package store defines the TaskStore persistence interface, the sentinel
// errors every implementation returns, and the SQL helpers (DBTX,
// RunInTransaction) shared by database-backed collections.
package store

// Package redisdoc provides a docstore.Collection backed by Redis.
//
// Each document is a JSON string at <prefix>:<collection>:<id>. Insertion
// order is kept in the sorted set <prefix>:<collection>, scored by a counter
// at <prefix>:<collection>:seq.
package redisdoc

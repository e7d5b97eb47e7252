// Package memory provides a process-local implementation of store.TaskStore.
// Data lives only as long as the TaskStore value; nothing is persisted.
package memory

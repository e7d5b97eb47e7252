// Package service contains the application use cases. It sits between the
// HTTP layer (internal/api) and the repository interfaces (internal/store).
//
// TaskService shapes arguments for the repository and returns repository
// results and errors unchanged. Callers classify errors with errors.Is
// against the store sentinels, for example store.ErrTaskNotFound.
package service

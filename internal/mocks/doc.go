// Package mocks provides centralized mock implementations for testing.
//
// Each mock is a struct with one function field per interface method. A nil
// field falls back to the mock's default return values, so tests only set
// the behavior they care about:
//
//	svc := &mocks.MockTaskService{
//	    GetTaskByIDFn: func(ctx context.Context, id string) (*domain.Task, error) {
//	        return nil, store.ErrTaskNotFound
//	    },
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Add a compile-time interface assertion in mocks_test.go
package mocks

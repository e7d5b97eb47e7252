// Package domain contains the task entity, its state values and field limits,
// and the validation error shared by the layers above it.
package domain

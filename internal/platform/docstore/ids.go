package docstore

import (
	nanoid "github.com/jaevor/go-nanoid"
)

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// IDLength is the length of every generated document ID.
	IDLength = 20
)

// IDGenerator returns document IDs. It must be safe for concurrent use.
type IDGenerator func() string

// NewIDGenerator returns a generator of 20-character alphanumeric IDs.
func NewIDGenerator() (IDGenerator, error) {
	gen, err := nanoid.CustomASCII(idAlphabet, IDLength)
	if err != nil {
		return nil, err
	}
	return IDGenerator(gen), nil
}

// MustIDGenerator is like NewIDGenerator but panics on error.
// The alphabet and length are constants, so an error here is a programming bug.
func MustIDGenerator() IDGenerator {
	gen, err := NewIDGenerator()
	if err != nil {
		// ALLOW-PANIC: constant alphabet and length cannot produce an error at runtime
		panic(err)
	}
	return gen
}

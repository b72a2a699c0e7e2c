// Package storage provides named document collections keyed by string id.
// Documents travel as JSON so every backend round-trips the same bytes the
// domain layer marshals.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by FindOne when no document has the given id.
var ErrNotFound = errors.New("document not found")

// Collection is a named set of JSON documents.
type Collection interface {
	// FindOne returns the document stored under id, or ErrNotFound.
	FindOne(ctx context.Context, id string) ([]byte, error)
	// ReplaceOne inserts doc under id or replaces the existing document
	// wholesale.
	ReplaceOne(ctx context.Context, id string, doc []byte) error
}

// Backend hands out collections by name.
type Backend interface {
	Collection(name string) Collection
}

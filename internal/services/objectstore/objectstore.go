// Package objectstore abstracts the blob storage used for transcription
// payloads.
package objectstore

import (
	"context"
	"errors"
)

// ErrNotFound indicates a missing object
var ErrNotFound = errors.New("object not found")

// ObjectStore stores transcription payloads by key
type ObjectStore interface {
	// Put writes an object, overwriting any existing one at the same key
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get reads an object by key
	Get(ctx context.Context, key string) ([]byte, error)

	// Healthy reports whether the store is reachable
	Healthy(ctx context.Context) error
}

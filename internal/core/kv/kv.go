// Package kv defines the key-value persistence boundary.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned (wrapped) by Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// KV is the interface for a persistent key-value store.
// Keys are strings, values are JSON-serializable.
type KV interface {
	// Get retrieves and deserializes a value by key.
	// Returns an error wrapping ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string, dest any) error

	// Set stores a value, overwriting any prior value for the key.
	Set(ctx context.Context, key string, value any) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Has returns whether a key exists.
	Has(ctx context.Context, key string) (bool, error)

	// ListKeys returns all keys in sorted order.
	ListKeys(ctx context.Context) ([]string, error)
}

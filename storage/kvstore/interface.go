// Package kvstore provides the persistence boundary used by the
// document store: named collections of JSON-encoded values, backed by
// either a flat JSON file or a bbolt database.
package kvstore

import "context"

// KVStore stores JSON-encoded values under string keys grouped into
// named collections. Implementations are safe for concurrent use.
type KVStore interface {
	// Put stores value under key in collection.
	Put(ctx context.Context, collection, key string, value []byte) error
	// Get returns the value for key, and whether it exists.
	Get(ctx context.Context, collection, key string) ([]byte, bool, error)
	// GetAll returns every key-value pair in collection.
	GetAll(ctx context.Context, collection string) (map[string][]byte, error)
	// Delete removes key and reports whether it existed.
	Delete(ctx context.Context, collection, key string) (bool, error)
	// Close releases the underlying resources.
	Close() error
}

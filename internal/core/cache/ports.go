package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key does not exist or has expired.
var ErrKeyNotFound = errors.New("key not found")

// Cache defines the key/value operations the bridge needs from a shared store.
type Cache interface {
	// Get retrieves a value by key. Returns ErrKeyNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// SetNX stores the value only if the key does not exist yet.
	// It reports whether the value was stored. TTL of 0 means no expiration.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Delete removes a value from the cache by key.
	Delete(ctx context.Context, key string) error

	// CompareAndDelete atomically removes the key only while it still holds value.
	// It reports whether the key was removed.
	CompareAndDelete(ctx context.Context, key string, value []byte) (bool, error)

	// Ping checks if the cache service is reachable.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}

package cache

import (
	"context"
	"time"
)

// Cache is the contract of the cache layer.
// Values are stored JSON encoded so any implementation (Redis, in-memory)
// can be swapped in.
type Cache interface {
	// Get decodes the cached value into dest.
	// found is false on a cache miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern (e.g. "book:*").
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}

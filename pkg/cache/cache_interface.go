package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer so implementations
// (Redis, in-memory) can be swapped.
type Cache interface {
	// Get reads a value into dest. Returns found=false on a cache miss,
	// in which case dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error

	// Counter operations, used for failed-login tracking.
	Increment(ctx context.Context, key string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

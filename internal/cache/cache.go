// Package cache provides typed read-through caches with optional per-entry expiry.
package cache

import (
	"context"
	"time"
)

// NoExpiry stores an entry until it is invalidated or the cache is cleared.
const NoExpiry time.Duration = 0

// Cache is a keyed store of V values.
//
// Implementations are safe for concurrent use. Concurrent Puts to one key
// resolve last-writer-wins. Expired entries are evicted lazily on Get.
type Cache[V any] interface {
	// Get returns the value under key and true, or the zero V and false when
	// the key is absent or expired.
	Get(ctx context.Context, key string) (V, bool)
	// Put stores v under key, replacing any previous value. A ttl of
	// NoExpiry means the entry never expires.
	Put(ctx context.Context, key string, v V, ttl time.Duration)
	// Invalidate removes key. A non-nil error means the entry could not be
	// removed; implementations must still stop serving it from Get.
	Invalidate(ctx context.Context, key string) error
	// Clear removes every entry.
	Clear(ctx context.Context)
}

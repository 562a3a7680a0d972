package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// scanBatch is the COUNT hint passed to SCAN by Clear.
const scanBatch = 100

// NewRedisClient creates a client for a single Redis instance. The client
// connects lazily.
func NewRedisClient(addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis: address is required")
	}
	return redis.NewClient(&redis.Options{Addr: addr}), nil
}

// Redis is a Cache backed by a Redis server. Values are stored as JSON
// under prefix+key. Redis failures are logged and treated as misses so a
// cache outage degrades to direct store reads.
//
// A key whose invalidation failed is held as stale: Get reports a miss for
// it and retries the delete until one succeeds or a Put overwrites it.
type Redis[V any] struct {
	client redis.UniversalClient
	prefix string
	logger *zap.Logger

	mu    sync.Mutex
	stale map[string]struct{}
}

// NewRedis returns a Redis-backed cache.
//
// Precondition: client and logger must be non-nil.
func NewRedis[V any](client redis.UniversalClient, prefix string, logger *zap.Logger) *Redis[V] {
	return &Redis[V]{
		client: client,
		prefix: prefix,
		logger: logger,
		stale:  make(map[string]struct{}),
	}
}

func (r *Redis[V]) isStale(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.stale[key]
	return ok
}

func (r *Redis[V]) markStale(key string, stale bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stale {
		r.stale[key] = struct{}{}
		return
	}
	delete(r.stale, key)
}

func (r *Redis[V]) key(k string) string {
	return r.prefix + k
}

// Get implements Cache.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V
	if r.isStale(key) {
		_ = r.Invalidate(ctx, key)
		return zero, false
	}
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return zero, false
	}
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		r.logger.Warn("cache entry undecodable; evicting", zap.String("key", key), zap.Error(err))
		_ = r.Invalidate(ctx, key)
		return zero, false
	}
	return v, true
}

// Put implements Cache. Redis treats a zero expiration as no expiry.
func (r *Redis[V]) Put(ctx context.Context, key string, v V, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		r.logger.Error("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		r.logger.Warn("cache put failed", zap.String("key", key), zap.Error(err))
		return
	}
	r.markStale(key, false)
}

// Invalidate implements Cache. On failure the key stays stale until a later
// delete or Put succeeds.
func (r *Redis[V]) Invalidate(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.markStale(key, true)
		r.logger.Warn("cache invalidate failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("invalidating cache key %q: %w", key, err)
	}
	r.markStale(key, false)
	return nil
}

// Clear implements Cache. Only keys under the configured prefix are removed.
func (r *Redis[V]) Clear(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", scanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.logger.Warn("cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("cache clear failed", zap.Int("keys", len(keys)), zap.Error(err))
	}
}

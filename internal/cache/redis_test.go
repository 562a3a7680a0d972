package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/guildhall/internal/cache"
	"github.com/cory-johannsen/guildhall/internal/game/character"
)

func newRedisCache[V any](t *testing.T, prefix string) (*cache.Redis[V], *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedis[V](client, prefix, zaptest.NewLogger(t)), mr
}

func TestNewRedisClient_RequiresAddress(t *testing.T) {
	_, err := cache.NewRedisClient("")
	assert.Error(t, err)
}

func TestRedis_RoundTripsCharacters(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache[[]*character.Character](t, "guildhall:")

	w, err := character.NewWarrior("Brakka", 3, 50, 30, "Axe")
	require.NoError(t, err)
	w.ID = 1
	r, err := character.NewRogue("Corvin", 2, 40, 35, 0.25)
	require.NoError(t, err)
	r.ID = 2

	c.Put(ctx, "characters:all", []*character.Character{w, r}, cache.NoExpiry)
	assert.True(t, mr.Exists("guildhall:characters:all"))

	got, ok := c.Get(ctx, "characters:all")
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, w, got[0])
	assert.Equal(t, r, got[1])
}

func TestRedis_TTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache[int](t, "t:")

	c.Put(ctx, "k", 5, time.Minute)
	v, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, 5, v)

	mr.FastForward(2 * time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedis_InvalidateAndClearRespectPrefix(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache[int](t, "mine:")
	require.NoError(t, mr.Set("other:k", "1"))

	c.Put(ctx, "a", 1, cache.NoExpiry)
	c.Put(ctx, "b", 2, cache.NoExpiry)
	c.Invalidate(ctx, "a")
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)

	c.Clear(ctx)
	_, ok = c.Get(ctx, "b")
	assert.False(t, ok)
	assert.True(t, mr.Exists("other:k"))
}

func TestRedis_UndecodableEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache[int](t, "p:")
	require.NoError(t, mr.Set("p:k", "not-json"))

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.False(t, mr.Exists("p:k"))
}

func TestRedis_OutageDegradesToMiss(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache[int](t, "p:")
	c.Put(ctx, "k", 1, cache.NoExpiry)
	mr.Close()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	c.Put(ctx, "k", 2, cache.NoExpiry)
	c.Invalidate(ctx, "k")
	c.Clear(ctx)
}

func TestRedis_FailedInvalidateIsNeverServed(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache[int](t, "p:")
	c.Put(ctx, "k", 1, cache.NoExpiry)

	mr.SetError("ERR injected failure")
	require.Error(t, c.Invalidate(ctx, "k"))
	mr.SetError("")
	require.True(t, mr.Exists("p:k"), "the failed delete leaves the entry in redis")

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok, "a stale entry must not be served")
	assert.False(t, mr.Exists("p:k"), "get retries the delete")

	c.Put(ctx, "k", 2, cache.NoExpiry)
	v, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestRedis_StaleKeyStaysAMissWhileRedisFails(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache[int](t, "p:")
	c.Put(ctx, "k", 1, cache.NoExpiry)

	mr.SetError("ERR injected failure")
	require.Error(t, c.Invalidate(ctx, "k"))
	c.Put(ctx, "k", 3, cache.NoExpiry)
	mr.SetError("")

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok, "a failed put does not clear the stale mark")
}

func TestMemory_InvalidateNeverFails(t *testing.T) {
	c := cache.NewMemory[int]()
	assert.NoError(t, c.Invalidate(context.Background(), "missing"))
}

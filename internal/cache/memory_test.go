package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/guildhall/internal/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestMemory_GetPut(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory[[]string]()

	_, ok := c.Get(ctx, "roster")
	assert.False(t, ok)

	c.Put(ctx, "roster", []string{"a", "b"}, cache.NoExpiry)
	v, ok := c.Get(ctx, "roster")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)

	c.Put(ctx, "roster", []string{"c"}, cache.NoExpiry)
	v, _ = c.Get(ctx, "roster")
	assert.Equal(t, []string{"c"}, v)
}

func TestMemory_ExpiresLazily(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := cache.NewMemory[int]().WithClock(clock.Now)

	c.Put(ctx, "k", 7, time.Minute)
	clock.Advance(59 * time.Second)
	v, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	clock.Advance(time.Second)
	assert.Equal(t, 1, c.Len(), "expired entry is retained until read")
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemory_NoExpiryNeverExpires(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := cache.NewMemory[int]().WithClock(clock.Now)

	c.Put(ctx, "k", 1, cache.NoExpiry)
	clock.Advance(24 * 365 * time.Hour)
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)
}

func TestMemory_InvalidateAndClear(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory[int]()
	c.Put(ctx, "a", 1, cache.NoExpiry)
	c.Put(ctx, "b", 2, cache.NoExpiry)

	c.Invalidate(ctx, "a")
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "b")
	assert.True(t, ok)

	c.Clear(ctx)
	assert.Equal(t, 0, c.Len())
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory[int]()

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for j := range 200 {
				c.Put(ctx, key, j, time.Millisecond*time.Duration(j%3))
				c.Get(ctx, key)
				if j%50 == 0 {
					c.Invalidate(ctx, key)
				}
			}
		}(i)
	}
	wg.Wait()

	c.Put(ctx, "final", 1, cache.NoExpiry)
	v, ok := c.Get(ctx, "final")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestProperty_MemoryLastPutWins(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		c := cache.NewMemory[int]()
		values := rapid.SliceOfN(rapid.Int(), 1, 20).Draw(rt, "values")
		for _, v := range values {
			c.Put(ctx, "k", v, cache.NoExpiry)
		}
		got, ok := c.Get(ctx, "k")
		if !ok || got != values[len(values)-1] {
			rt.Fatalf("got %d (%v), want %d", got, ok, values[len(values)-1])
		}
	})
}

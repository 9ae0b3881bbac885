package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(time.Minute, 0)

	c.Set(ctx, "k", 42)
	v, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	c.Delete(ctx, "k")
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	c := NewInMemoryCache(time.Minute, 0)
	c.now = func() time.Time { return now }

	c.Set(ctx, "a", "x")
	now = now.Add(30 * time.Second)
	c.Set(ctx, "b", "y")

	now = now.Add(31 * time.Second)
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok, "a is past its ttl")
	_, ok = c.Get(ctx, "b")
	assert.True(t, ok)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.DeleteExpired())
	assert.Equal(t, 1, c.Len())
}

func TestCleanupRoutine(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(time.Millisecond, 5*time.Millisecond)

	c.Set(ctx, "k", 1)
	c.StartCleanup(ctx)
	c.StartCleanup(ctx)
	defer c.StopCleanup()

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestStopCleanupWithoutStart(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)
	c.StopCleanup()
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(time.Minute, 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(ctx, "key", i)
				c.Get(ctx, "key")
			}
		}(i)
	}
	wg.Wait()

	_, ok := c.Get(ctx, "key")
	assert.True(t, ok)
}

package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/supersub/supersub/pkg/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLRU(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](3)
		c.Set("a", 1)
		c.Set("b", 2)

		v, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v)

		_, ok = c.Get("missing")
		assert.False(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)
		c.Set("a", 1)
		c.Set("b", 2)
		_, _ = c.Get("a")
		c.Set("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok)
		_, ok = c.Get("a")
		assert.True(t, ok)
		_, ok = c.Get("c")
		assert.True(t, ok)
	})

	t.Run("update keeps single entry", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)
		c.Set("a", 1)
		c.Set("a", 10)

		v, _ := c.Get("a")
		assert.Equal(t, 10, v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("entries expire", func(t *testing.T) {
		t.Parallel()
		clock := &fakeClock{now: time.Unix(1000, 0)}
		c := cache.NewLRU[string, int](2, cache.WithTTL(time.Minute), cache.WithClock(clock.Now))
		c.Set("a", 1)

		clock.Advance(59 * time.Second)
		_, ok := c.Get("a")
		assert.True(t, ok)

		clock.Advance(time.Second)
		_, ok = c.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("delete and purge", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[int, string](4)
		c.Set(1, "x")
		c.Set(2, "y")

		assert.True(t, c.Delete(1))
		assert.False(t, c.Delete(1))
		c.Purge()
		assert.Equal(t, 0, c.Len())
	})

	t.Run("non-positive capacity panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { cache.NewLRU[string, int](0) })
	})
}

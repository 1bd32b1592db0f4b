package memory_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/dao-janny/internal/adapter/memory"
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
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestCache_HitWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := memory.NewCache[uint64, string](time.Minute, memory.WithClock[uint64, string](clock.Now))

	c.Set(10, "fee")
	clock.Advance(59 * time.Second)

	v, ok := c.Get(10)
	assert.True(t, ok)
	assert.Equal(t, "fee", v)
}

func TestCache_ExpiresAtTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := memory.NewCache[uint64, string](time.Minute, memory.WithClock[uint64, string](clock.Now))

	c.Set(10, "fee")
	clock.Advance(time.Minute)

	_, ok := c.Get(10)
	assert.False(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	c := memory.NewCache[string, int](time.Hour)
	c.Set("a", 1)
	c.Invalidate("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := memory.NewCache[int, int](time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set(i%5, i)
			c.Get(i % 5)
		}(i)
	}
	wg.Wait()

	for k := 0; k < 5; k++ {
		_, ok := c.Get(k)
		assert.True(t, ok)
	}
}

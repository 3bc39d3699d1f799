package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Cache[string] = (*LRU[string])(nil)

func newClockedLRU(size int, ttl time.Duration) (*LRU[string], *time.Time) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	c := NewLRU[string](size, ttl)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestLRU_GetSet(t *testing.T) {
	c, _ := newClockedLRU(10, time.Minute)

	_, ok := c.Get("GET /api/categories")
	assert.False(t, ok)

	c.Set("GET /api/categories", "overview")
	got, ok := c.Get("GET /api/categories")
	require.True(t, ok)
	assert.Equal(t, "overview", got)

	c.Set("GET /api/categories", "updated")
	got, _ = c.Get("GET /api/categories")
	assert.Equal(t, "updated", got)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_Expiry(t *testing.T) {
	c, now := newClockedLRU(10, time.Minute)

	c.Set("a", "1")
	*now = now.Add(59 * time.Second)
	_, ok := c.Get("a")
	assert.True(t, ok)

	*now = now.Add(time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newClockedLRU(2, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	_, _ = c.Get("a")
	c.Set("c", "3")

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLRU_Invalidate(t *testing.T) {
	c, _ := newClockedLRU(10, time.Minute)

	c.Set("GET /api/categories?month=2024-03", "march")
	c.Set("GET /api/categories?month=2024-04", "april")
	c.Set("GET /api/budget/summary", "summary")

	c.Invalidate("GET /api/budget/summary")
	c.Invalidate("missing")
	assert.Equal(t, 2, c.Len())

	assert.Equal(t, 2, c.InvalidatePrefix("GET /api/categories"))
	assert.Equal(t, 0, c.Len())
}

func TestLRU_CleanExpired(t *testing.T) {
	c, now := newClockedLRU(10, time.Minute)

	c.Set("old", "1")
	*now = now.Add(30 * time.Second)
	c.Set("new", "2")
	*now = now.Add(45 * time.Second)

	assert.Equal(t, 1, c.CleanExpired())
	_, ok := c.Get("new")
	assert.True(t, ok)
}

func TestLRU_LenCountsExpiredUntilCleaned(t *testing.T) {
	c, now := newClockedLRU(10, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	*now = now.Add(2 * time.Minute)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.CleanExpired())
	assert.Equal(t, 0, c.Len())
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](50, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i*j)%80)
				c.Set(key, j)
				c.Get(key)
				if j%10 == 0 {
					c.InvalidatePrefix("k1")
				}
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}

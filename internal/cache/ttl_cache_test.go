package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withFrozenClock(t *testing.T) func(time.Duration) {
	t.Helper()
	current := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return current }
	t.Cleanup(func() { now = orig })
	return func(d time.Duration) { current = current.Add(d) }
}

func TestCache_SetGet(t *testing.T) {
	c := New[string, int]()
	c.Set("a", 1, time.Minute)

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = c.Get("missing")
	require.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	advance := withFrozenClock(t)
	c := New[string, string]()
	c.Set("k", "v", 30*time.Second)

	_, ok := c.Get("k")
	require.True(t, ok)

	advance(31 * time.Second)
	_, ok = c.Get("k")
	require.False(t, ok)
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	advance := withFrozenClock(t)
	c := New[string, int]()
	c.Set("forever", 42, 0)

	advance(1000 * time.Hour)
	v, ok := c.Get("forever")
	require.True(t, ok)
	require.Equal(t, 42, v)
}

func TestCache_DeleteAndLen(t *testing.T) {
	advance := withFrozenClock(t)
	c := New[string, int]()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Second)
	require.Equal(t, 2, c.Len())

	advance(2 * time.Second)
	require.Equal(t, 1, c.Len())

	c.Delete("a")
	require.Equal(t, 0, c.Len())
}

func TestCache_PurgeExpired(t *testing.T) {
	advance := withFrozenClock(t)
	c := New[string, int]()
	c.Set("old", 1, time.Second)
	c.Set("fresh", 2, time.Hour)

	advance(2 * time.Second)
	c.PurgeExpired()

	_, ok := c.Get("fresh")
	require.True(t, ok)
	require.Equal(t, 1, c.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int, int]()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set(n, n*2, time.Minute)
			c.Get(n)
			c.Len()
		}(i)
	}
	wg.Wait()
	require.Equal(t, 20, c.Len())
}

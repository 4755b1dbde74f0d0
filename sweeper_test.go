package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/krisalay/routecache"
	"github.com/krisalay/routecache/engine"
	"github.com/krisalay/routecache/eviction"
	"github.com/krisalay/routecache/expiration"
)

func TestSweepRemovesOnlyStaleEntries(t *testing.T) {
	f := newBoundedFixture(time.Minute, 10, eviction.LRU, nil)
	f.cache.SetWithTTL("short", 1, time.Second)
	f.cache.SetWithTTL("other-short", 2, time.Second)
	f.cache.SetWithTTL("long", 3, time.Hour)

	assert.Zero(t, f.cache.Sweep())

	f.clock.Advance(time.Second)
	assert.Equal(t, 2, f.cache.Sweep())
	assert.Equal(t, 1, f.cache.Size())
	assert.True(t, f.cache.Has("long"))
	assert.EqualValues(t, 2, f.metrics.expired.Load())
}

func TestSweepLeavesFreshnessUnchanged(t *testing.T) {
	f := newFixture(time.Minute, nil)
	f.cache.SetWithTTL("k", "v", 10*time.Second)

	f.clock.Advance(9 * time.Second)
	f.cache.Sweep()
	assert.True(t, f.cache.Has("k"))

	f.clock.Advance(time.Second)
	assert.False(t, f.cache.Has("k"))
}

func TestBackgroundSweeperReclaimsUnreadKeys(t *testing.T) {
	eng := engine.NewCacheEngine(&expiration.ExpireAfterWrite{Default: time.Minute}, nil, nil)
	c := cache.NewShardedCache(2, 0, eviction.LRU, eng)
	defer c.Close()

	require.NoError(t, c.StartSweeper(10*time.Millisecond))
	require.NoError(t, c.StartSweeper(10*time.Millisecond), "second start is a no-op")

	c.SetWithTTL("/events", "v", 20*time.Millisecond)
	c.Set("/models", "v")

	// never read /events; only the sweeper can remove it
	require.Eventually(t, func() bool { return c.Size() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, c.Has("/models"))
}

func TestSweeperDisabledByDefault(t *testing.T) {
	f := newFixture(time.Minute, nil)
	require.NoError(t, f.cache.StartSweeper(0))

	f.cache.SetWithTTL("k", "v", time.Millisecond)
	f.clock.Advance(time.Second)
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 1, f.cache.Size())
}

func TestCloseIsIdempotent(t *testing.T) {
	c := cache.NewShardedCache(1, 0, eviction.LRU, nil)
	require.NoError(t, c.StartSweeper(time.Second))

	c.Close()
	c.Close()

	assert.ErrorIs(t, c.StartSweeper(time.Second), cache.ErrClosed)

	// entries stay usable after Close
	c.Set("k", "v")
	assert.True(t, c.Has("k"))
}

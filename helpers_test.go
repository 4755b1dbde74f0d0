package cache_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	cache "github.com/krisalay/routecache"
	"github.com/krisalay/routecache/engine"
	"github.com/krisalay/routecache/eviction"
	"github.com/krisalay/routecache/expiration"
	"github.com/krisalay/routecache/types"
)

//
// ================= MANUAL CLOCK =================
//

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

//
// ================= RECORDING METRICS =================
//

type countingMetrics struct {
	hits, misses, expired, evictions, loadsOK, loadsErr atomic.Int64
}

func (m *countingMetrics) Hit()      { m.hits.Add(1) }
func (m *countingMetrics) Miss()     { m.misses.Add(1) }
func (m *countingMetrics) Expire()   { m.expired.Add(1) }
func (m *countingMetrics) Eviction() { m.evictions.Add(1) }
func (m *countingMetrics) Load(ok bool) {
	if ok {
		m.loadsOK.Add(1)
		return
	}
	m.loadsErr.Add(1)
}

//
// ================= TEST LOADER =================
//

type mapLoader struct {
	mu    sync.Mutex
	data  map[string]any
	calls atomic.Int64
}

func newMapLoader(data map[string]any) *mapLoader {
	return &mapLoader{data: data}
}

func (l *mapLoader) Load(_ context.Context, key string) (any, error) {
	l.calls.Add(1)
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.data[key]
	if !ok {
		return nil, errNotInCatalog
	}
	return v, nil
}

//
// ================= HELPER: CREATE CACHE =================
//

type fixture struct {
	cache   *cache.ShardedCache
	clock   *manualClock
	metrics *countingMetrics
}

func newFixture(defaultTTL time.Duration, loader types.Loader, opts ...engine.Option) fixture {
	return newBoundedFixture(defaultTTL, 0, eviction.LRU, loader, opts...)
}

func newBoundedFixture(
	defaultTTL time.Duration,
	capacity int,
	policy eviction.PolicyType,
	loader types.Loader,
	opts ...engine.Option,
) fixture {
	clock := newManualClock()
	m := &countingMetrics{}

	eng := engine.NewCacheEngine(
		&expiration.ExpireAfterWrite{Default: defaultTTL},
		loader,
		m,
		append([]engine.Option{engine.WithClock(clock)}, opts...)...,
	)

	return fixture{
		cache:   cache.NewShardedCache(1, capacity, policy, eng),
		clock:   clock,
		metrics: m,
	}
}

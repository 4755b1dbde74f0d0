package cache

import (
	"context"
	"sync"
	"time"

	"github.com/samber/mo"
	"golang.org/x/sync/singleflight"

	api "github.com/krisalay/routecache/api"
	"github.com/krisalay/routecache/engine"
	evict "github.com/krisalay/routecache/eviction"
	"github.com/krisalay/routecache/shard"
	"github.com/krisalay/routecache/types"
)

/*
ShardedCache is the main cache implementation.
It connects:
- shards (storage and locking)
- the engine (expiration, clock, loader, metrics, logging)
- eviction, when a capacity is set
- the optional background sweeper

Construct one at application start and pass it to whoever needs it.
Tests build their own instance.
*/
type ShardedCache struct {
	shards []*shard.Shard

	engine *engine.CacheEngine

	selector shard.Selector

	// sf collapses concurrent read-through loads of the same key into one Loader call.
	sf singleflight.Group

	// sweepMu guards sweeper and closed.
	sweepMu sync.Mutex
	sweeper *sweeper
	closed  bool
}

/*
NewShardedCache builds a cache.

shards is rounded up to a power of two (minimum 1). capacity <= 0 means unbounded,
in which case eviction is ignored. A nil engine gets all defaults: expire after
write with a five minute TTL, no loader, no metrics, wall clock.
*/
func NewShardedCache(
	shards int,
	capacity int,
	eviction evict.PolicyType,
	eng *engine.CacheEngine,
) *ShardedCache {
	if eng == nil {
		eng = engine.NewCacheEngine(nil, nil, nil)
	}
	if eviction == "" {
		eviction = evict.LRU
	}

	return &ShardedCache{
		shards:   shard.NewShards(shards, capacity, eviction),
		engine:   eng,
		selector: shard.PowerOfTwoSelector{},
	}
}

// Set stores value under key with the default TTL.
func (c *ShardedCache) Set(key string, value any) {
	c.SetWithTTL(key, value, 0)
}

/*
SetWithTTL stores value under key for ttl. ttl <= 0 means the default TTL.

An existing entry is replaced outright: both its value and its clock restart
from this call. Inserting a new key into a full shard evicts one key first.
*/
func (c *ShardedCache) SetWithTTL(key string, value any, ttl time.Duration) {
	sh := c.selector.Select(key, c.shards)

	sh.Mu.Lock()
	defer sh.Mu.Unlock()

	c.setLocked(sh, key, value, ttl)
}

func (c *ShardedCache) setLocked(sh *shard.Shard, key string, value any, ttl time.Duration) {
	ent := &types.CacheEntry{Key: key, Value: value}
	if ttl > 0 {
		ent.TTL = ttl
	}
	c.engine.OnWrite(ent, c.engine.Now())

	if _, exists := sh.Store.Get(key); !exists && sh.Full() {
		if victim, ok := sh.Eviction.Evict(); ok {
			sh.Store.Delete(victim)
			c.engine.OnEvict(victim)
		}
	}

	sh.Store.Put(key, ent)
	if sh.Eviction != nil {
		sh.Eviction.OnPut(key)
	}
}

/*
Get returns the value for key if it is present and fresh.

A stale entry is deleted as part of the read and reported as absent.
Absence is a normal outcome, signalled by ok == false.
*/
func (c *ShardedCache) Get(key string) (any, bool) {
	sh := c.selector.Select(key, c.shards)

	sh.Mu.Lock()
	defer sh.Mu.Unlock()

	return c.getLocked(sh, key)
}

func (c *ShardedCache) getLocked(sh *shard.Shard, key string) (any, bool) {
	ent, ok := sh.Store.Get(key)
	if !ok {
		c.engine.Metrics.Miss()
		return nil, false
	}

	now := c.engine.Now()
	if c.engine.IsExpired(ent, now) {
		c.removeLocked(sh, key)
		c.engine.OnExpire(ent, now)
		c.engine.Metrics.Miss()
		return nil, false
	}

	c.engine.OnRead(ent, now)
	if sh.Eviction != nil {
		sh.Eviction.OnGet(key)
	}
	return ent.Value, true
}

// Lookup is Get with an Option result instead of a comma-ok pair.
func (c *ShardedCache) Lookup(key string) mo.Option[any] {
	if v, ok := c.Get(key); ok {
		return mo.Some(v)
	}
	return mo.None[any]()
}

// Has reports whether key holds a fresh entry. Like Get, it purges a stale one.
func (c *ShardedCache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes key. Removing a missing key is a no-op.
func (c *ShardedCache) Delete(key string) {
	sh := c.selector.Select(key, c.shards)

	sh.Mu.Lock()
	defer sh.Mu.Unlock()

	c.removeLocked(sh, key)
	sh.Epoch++
}

// Clear removes every entry regardless of freshness.
func (c *ShardedCache) Clear() {
	for _, sh := range c.shards {
		sh.Mu.Lock()
		sh.Epoch++
		sh.Store.Clear()
		if sh.Eviction != nil {
			sh.Eviction.Clear()
		}
		sh.Mu.Unlock()
	}
}

/*
Size returns the number of stored entries.

Stale entries that no read has purged yet are counted too. Treat the number as
a diagnostic, not as a count of live entries.
*/
func (c *ShardedCache) Size() int {
	n := 0
	for _, sh := range c.shards {
		sh.Mu.Lock()
		n += sh.Store.Size()
		sh.Mu.Unlock()
	}
	return n
}

/*
TTL returns how long key stays fresh.

-2 means the key is absent or already stale. TTL only inspects the entry and
never purges it.
*/
func (c *ShardedCache) TTL(key string) time.Duration {
	sh := c.selector.Select(key, c.shards)

	sh.Mu.Lock()
	defer sh.Mu.Unlock()

	ent, ok := sh.Store.Get(key)
	if !ok {
		return -2
	}
	now := c.engine.Now()
	if c.engine.IsExpired(ent, now) {
		return -2
	}
	return ent.ExpiresAt().Sub(now)
}

/*
Expire restarts a fresh entry's clock from now with a new ttl (<= 0 means the
default TTL). It returns false when the key is absent or stale; a stale entry is
purged just as Get would.
*/
func (c *ShardedCache) Expire(key string, ttl time.Duration) bool {
	sh := c.selector.Select(key, c.shards)

	sh.Mu.Lock()
	defer sh.Mu.Unlock()

	ent, ok := sh.Store.Get(key)
	if !ok {
		return false
	}

	now := c.engine.Now()
	if c.engine.IsExpired(ent, now) {
		c.removeLocked(sh, key)
		c.engine.OnExpire(ent, now)
		return false
	}

	ent.TTL = 0
	if ttl > 0 {
		ent.TTL = ttl
	}
	c.engine.OnWrite(ent, now)
	return true
}

/*
Fetch is the read-through path.

A fresh entry is returned as is. On a miss the engine's Loader is called once
per key no matter how many goroutines are waiting on it, and the result is
stored with the default TTL. Loader failures are returned and nothing is cached.

The load runs detached from ctx's cancellation so one caller giving up does not
fail the others waiting on the same key; a cancelled caller returns ctx.Err()
right away while the load finishes for the rest. The loaded value is not stored
if the key was written, or the shard saw a Delete or Clear, after the miss: the
newer write wins and the caller still receives what the loader returned.
*/
func (c *ShardedCache) Fetch(ctx context.Context, key string) (any, error) {
	sh := c.selector.Select(key, c.shards)

	sh.Mu.Lock()
	v, ok := c.getLocked(sh, key)
	epoch := sh.Epoch
	sh.Mu.Unlock()
	if ok {
		return v, nil
	}

	ch := c.sf.DoChan(key, func() (any, error) {
		v, err := c.engine.Load(context.WithoutCancel(ctx), key)
		if err != nil {
			return nil, err
		}
		c.storeLoaded(sh, key, v, epoch)
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// storeLoaded caches a loaded value unless the shard changed under the load.
func (c *ShardedCache) storeLoaded(sh *shard.Shard, key string, value any, epoch uint64) {
	sh.Mu.Lock()
	defer sh.Mu.Unlock()

	if sh.Epoch != epoch {
		return
	}
	// The miss purged any stale entry, so whatever is here was written since.
	if _, exists := sh.Store.Get(key); exists {
		return
	}
	c.setLocked(sh, key, value, 0)
}

// Close stops the background sweeper, if one was started. Safe to call more than once.
// Entries stay readable and writable afterwards; only the sweeper is gone.
func (c *ShardedCache) Close() {
	c.sweepMu.Lock()
	defer c.sweepMu.Unlock()

	c.closed = true
	if c.sweeper != nil {
		c.sweeper.stop()
		c.sweeper = nil
	}
}

func (c *ShardedCache) removeLocked(sh *shard.Shard, key string) {
	if sh.Store.Delete(key) && sh.Eviction != nil {
		sh.Eviction.Remove(key)
	}
}

var _ api.Cache = (*ShardedCache)(nil)

package cache

import (
	"context"
	"time"

	"github.com/samber/mo"
)

/*
Cache is the public contract of the route cache. Callers (page loaders, the
preloader, admin tooling) depend on this interface rather than on ShardedCache,
so a test can hand them a fresh instance.

None of the in-memory operations fail or block. Only Fetch does I/O, through
the configured Loader.
*/
type Cache interface {

	/*
		Set stores value under key with the default TTL.
		An existing entry is overwritten and its clock restarts.
	*/
	Set(key string, value any)

	/*
		SetWithTTL stores value under key for ttl.
		ttl <= 0 falls back to the default TTL.
	*/
	SetWithTTL(key string, value any, ttl time.Duration)

	/*
		Get returns the value if the entry is present and fresh.

		BEHAVIOR:
		---------
		- fresh entry: (value, true)
		- never set: (nil, false)
		- stale entry: (nil, false), and the entry is deleted as part of the read
	*/
	Get(key string) (any, bool)

	// Lookup is Get returning mo.None when the key is absent.
	Lookup(key string) mo.Option[any]

	// Has reports whether Get would return a value right now, with the same purge side effect.
	Has(key string) bool

	// Delete removes one key. Idempotent.
	Delete(key string)

	// Clear removes every entry, fresh or not.
	Clear()

	/*
		Size returns the number of stored entries, including stale ones that
		no read has purged yet. It is a diagnostic, not a live count.
	*/
	Size() int

	/*
		TTL returns the remaining lifetime of key.

		RETURN VALUES:
		--------------
		> 0 : time left before the entry goes stale
		-2  : key absent or already stale
	*/
	TTL(key string) time.Duration

	// Expire restarts a fresh entry's clock with a new ttl. False if the key is absent or stale.
	Expire(key string, ttl time.Duration) bool

	/*
		Fetch returns the cached value, loading and storing it on a miss.
		Concurrent misses on one key share a single load.
	*/
	Fetch(ctx context.Context, key string) (any, error)

	// Close stops background work. Safe to call more than once.
	Close()
}

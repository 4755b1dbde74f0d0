package engine

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/krisalay/routecache/expiration"
	"github.com/krisalay/routecache/types"
)

// ErrNoLoader is returned by the read-through path when no Loader is configured.
var ErrNoLoader = errors.New("engine: no loader configured")

/*
CacheEngine is the policy layer of the cache.

It decides:
- When an entry is stale
- How an entry's clock is stamped on reads and writes
- How data is loaded on a read-through miss
- How events are reported (metrics, logs)

It does NOT store data, pick shards, take locks or choose eviction victims.
*/
type CacheEngine struct {

	// Expiration decides freshness. Never nil: NewCacheEngine falls back to ExpireAfterWrite.
	Expiration expiration.Strategy

	// Loader backs Fetch and the preloader. Nil disables read-through.
	Loader types.Loader

	// Metrics records hits, misses, expirations, evictions and loads.
	Metrics types.Metrics

	// Clock is the time source for every freshness decision.
	Clock types.Clock

	// Logger receives debug events and loader failures.
	Logger *zap.Logger
}

// Option customizes a CacheEngine.
type Option func(*CacheEngine)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c types.Clock) Option {
	return func(e *CacheEngine) {
		if c != nil {
			e.Clock = c
		}
	}
}

// WithLogger sets the logger for expiry, eviction and loader events.
func WithLogger(l *zap.Logger) Option {
	return func(e *CacheEngine) {
		if l != nil {
			e.Logger = l
		}
	}
}

/*
NewCacheEngine creates a CacheEngine.

exp, loader and metrics may all be nil:
- nil exp means ExpireAfterWrite with the default TTL
- nil loader disables read-through
- nil metrics means NoopMetrics
*/
func NewCacheEngine(
	exp expiration.Strategy,
	loader types.Loader,
	metrics types.Metrics,
	opts ...Option,
) *CacheEngine {
	if exp == nil {
		exp = &expiration.ExpireAfterWrite{}
	}
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}

	e := &CacheEngine{
		Expiration: exp,
		Loader:     loader,
		Metrics:    metrics,
		Clock:      types.SystemClock{},
		Logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now reads the engine's clock.
func (e *CacheEngine) Now() time.Time {
	return e.Clock.Now()
}

// IsExpired delegates the freshness decision to the expiration strategy.
func (e *CacheEngine) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return e.Expiration.IsExpired(ent, now)
}

/*
OnRead is called every time the cache returns a fresh entry.
The caller holds the shard lock, so the strategy may mutate the entry.
*/
func (e *CacheEngine) OnRead(ent *types.CacheEntry, now time.Time) {
	e.Metrics.Hit()
	e.Expiration.OnAccess(ent, now)
}

// OnWrite stamps a new or overwritten entry. The caller holds the shard lock.
func (e *CacheEngine) OnWrite(ent *types.CacheEntry, now time.Time) {
	e.Expiration.OnWrite(ent, now)
}

// OnExpire records a stale entry that was just removed.
func (e *CacheEngine) OnExpire(ent *types.CacheEntry, now time.Time) {
	e.Metrics.Expire()
	e.Logger.Debug("entry expired",
		zap.String("key", ent.Key),
		zap.Duration("age", ent.Age(now)),
		zap.Duration("ttl", ent.TTL),
	)
}

// OnEvict records a key dropped for capacity.
func (e *CacheEngine) OnEvict(key string) {
	e.Metrics.Eviction()
	e.Logger.Debug("entry evicted", zap.String("key", key))
}

/*
Load asks the Loader for key.

Errors are wrapped with the key so callers of Fetch or the preloader can tell
which route failed. Failures are logged at Warn; the cache itself stays untouched.
*/
func (e *CacheEngine) Load(ctx context.Context, key string) (any, error) {
	if e.Loader == nil {
		return nil, ErrNoLoader
	}

	v, err := e.Loader.Load(ctx, key)
	e.Metrics.Load(err == nil)
	if err != nil {
		e.Logger.Warn("load failed", zap.String("key", key), zap.Error(err))
		return nil, errors.Wrapf(err, "load %q", key)
	}
	return v, nil
}

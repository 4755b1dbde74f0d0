package types

// This file defines how the cache reports what it is doing.

/*
Metrics receives one call per cache event.
Each method represents an event in the cache lifecycle.
*/
type Metrics interface {

	// Hit is called when a read finds a fresh entry.
	Hit()

	// Miss is called when a read finds nothing usable, whether the key was never set or has expired.
	Miss()

	// Expire is called when a stale entry is removed, either by a read or by the sweeper.
	Expire()

	// Eviction is called when a key is removed because its shard is at capacity.
	Eviction()

	// Load is called after the read-through path asked the Loader for a value.
	// ok is false when the loader failed.
	Load(ok bool)
}

/*
NoopMetrics ignores every event.

The engine falls back to it when no Metrics is supplied, so the hot path
never needs a nil check.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Expire()   {}
func (NoopMetrics) Eviction() {}
func (NoopMetrics) Load(bool) {}

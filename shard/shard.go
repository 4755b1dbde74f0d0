package shard

import (
	"sync"

	"github.com/krisalay/routecache/eviction"
)

/*
A Shard is one independent slice of the cache: its own map, its own lock and,
when the cache is bounded, its own eviction bookkeeping.
*/
type Shard struct {

	// Mu guards Store and Eviction. Reads take it too, since a read may purge.
	Mu sync.Mutex

	Store ShardStore

	// Eviction is nil when the cache has no capacity bound.
	Eviction eviction.Policy

	// Capacity is the per-shard entry limit; <= 0 means unbounded.
	Capacity int

	// Epoch counts explicit removals (Delete, Clear). A read-through load that
	// started in an older epoch must not refill the shard.
	Epoch uint64
}

func NewShard(capacity int, policy eviction.PolicyType) *Shard {
	s := &Shard{
		Store:    NewMapStore(),
		Capacity: capacity,
	}
	if capacity > 0 {
		s.Eviction = eviction.NewEvictionPolicy(policy)
	}
	return s
}

/*
NewShards builds n shards (rounded up to a power of two) and splits capacity
across them so the per-shard limits add up to exactly capacity.

Every shard of a bounded cache must hold at least one entry, so when capacity
is smaller than the shard count the count is halved until it fits.
*/
func NewShards(n, capacity int, policy eviction.PolicyType) []*Shard {
	n = RoundUp(n)
	if capacity > 0 {
		for n > capacity {
			n /= 2
		}
	}

	per, extra := 0, 0
	if capacity > 0 {
		per, extra = capacity/n, capacity%n
	}

	shards := make([]*Shard, n)
	for i := range shards {
		c := per
		if i < extra {
			c++
		}
		shards[i] = NewShard(c, policy)
	}
	return shards
}

// Full reports whether inserting one more new key needs an eviction first.
func (s *Shard) Full() bool {
	return s.Capacity > 0 && s.Store.Size() >= s.Capacity
}

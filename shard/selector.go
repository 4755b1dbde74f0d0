package shard

import "github.com/cespare/xxhash/v2"

/*
This file decides which shard owns a key. A key always maps to the same shard,
so every operation on that key is serialized by one shard lock.
*/

// Selector picks the shard that owns a key.
type Selector interface {
	Select(string, []*Shard) *Shard
}

/*
PowerOfTwoSelector hashes the key with xxhash and masks the result.
The shard count must be a power of two; NewShards guarantees that.
*/
type PowerOfTwoSelector struct{}

func (PowerOfTwoSelector) Select(key string, shards []*Shard) *Shard {
	idx := xxhash.Sum64String(key) & uint64(len(shards)-1)
	return shards[idx]
}

// RoundUp returns the smallest power of two >= n, and 1 for n <= 1.
func RoundUp(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

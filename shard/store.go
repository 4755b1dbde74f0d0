package shard

import "github.com/krisalay/routecache/types"

/*
ShardStore holds the key -> entry map of one shard.

Implementations are not safe for concurrent use on their own: every call is made
with the owning shard's Mu held. Keeping the lock outside the store is what makes
the lazy-expiration read-check-delete in Get a single atomic step.
*/
type ShardStore interface {
	Get(string) (*types.CacheEntry, bool)

	// Put inserts or replaces an entry and reports whether the key was new.
	Put(string, *types.CacheEntry) bool

	// Delete removes an entry and reports whether it was present.
	Delete(string) bool

	// Size counts stored entries, stale or not.
	Size() int

	// Clear drops everything.
	Clear()

	// Range visits entries until fn returns false. fn must not mutate the store.
	Range(fn func(*types.CacheEntry) bool)
}

type mapStore struct {
	data map[string]*types.CacheEntry
}

func NewMapStore() ShardStore {
	return &mapStore{data: make(map[string]*types.CacheEntry)}
}

func (s *mapStore) Get(key string) (*types.CacheEntry, bool) {
	ent, ok := s.data[key]
	return ent, ok
}

func (s *mapStore) Put(key string, ent *types.CacheEntry) bool {
	_, existed := s.data[key]
	s.data[key] = ent
	return !existed
}

func (s *mapStore) Delete(key string) bool {
	if _, ok := s.data[key]; !ok {
		return false
	}
	delete(s.data, key)
	return true
}

func (s *mapStore) Size() int {
	return len(s.data)
}

func (s *mapStore) Clear() {
	s.data = make(map[string]*types.CacheEntry)
}

func (s *mapStore) Range(fn func(*types.CacheEntry) bool) {
	for _, ent := range s.data {
		if !fn(ent) {
			return
		}
	}
}

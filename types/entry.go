package types

import "time"

/*
CacheEntry is one stored value plus the clock reading it was stored at.

The entry is fresh while now - StoredAt < TTL. Once the age reaches TTL the entry
is treated as absent, and the next read of that key removes it.
*/
type CacheEntry struct {
	Key      string
	Value    any
	StoredAt time.Time
	TTL      time.Duration // zero until the expiration strategy fills in a default
}

// ExpiresAt is the first instant at which the entry is no longer fresh.
func (e *CacheEntry) ExpiresAt() time.Time {
	return e.StoredAt.Add(e.TTL)
}

// Age is how long the entry has been stored as of now.
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt)
}

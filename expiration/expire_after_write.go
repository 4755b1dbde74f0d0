package expiration

import (
	"time"

	"github.com/krisalay/routecache/types"
)

/*
ExpireAfterWrite gives every entry a fixed lifetime measured from its last write.
Reads never extend it. Overwriting a key restarts the clock from the moment of the
overwrite, not from the first insertion.
*/
type ExpireAfterWrite struct {

	// Default is the TTL for writes that do not carry one. Zero means DefaultTTL.
	Default time.Duration
}

func (e *ExpireAfterWrite) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return expired(ent, now)
}

func (e *ExpireAfterWrite) OnAccess(*types.CacheEntry, time.Time) {}

// OnWrite stamps the entry and fills in the default TTL when the caller gave none.
func (e *ExpireAfterWrite) OnWrite(ent *types.CacheEntry, now time.Time) {
	ent.StoredAt = now
	if ent.TTL <= 0 {
		ent.TTL = orDefault(e.Default)
	}
}

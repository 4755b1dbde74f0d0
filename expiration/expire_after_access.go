package expiration

import (
	"time"

	"github.com/krisalay/routecache/types"
)

/*
ExpireAfterAccess implements a "sliding TTL": every successful read restarts the
entry's clock. As long as a route keeps being visited it stays cached; once nobody
touches it for a full TTL it expires.
*/
type ExpireAfterAccess struct {

	// TTL is the idle window used for writes that carry no TTL of their own.
	TTL time.Duration
}

func (e *ExpireAfterAccess) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return expired(ent, now)
}

// OnAccess moves StoredAt forward so the entry's own TTL is measured from this read.
func (e *ExpireAfterAccess) OnAccess(ent *types.CacheEntry, now time.Time) {
	ent.StoredAt = now
}

/*
OnWrite stamps the entry. An explicit TTL from SetWithTTL or Expire is kept;
only a zero TTL is replaced.
*/
func (e *ExpireAfterAccess) OnWrite(ent *types.CacheEntry, now time.Time) {
	ent.StoredAt = now
	if ent.TTL <= 0 {
		ent.TTL = orDefault(e.TTL)
	}
}

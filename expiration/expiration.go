// This file defines how cache entries expire over time.

package expiration

import (
	"time"

	"github.com/krisalay/routecache/types"
)

// DefaultTTL applies when neither the caller nor the configuration gives a TTL.
const DefaultTTL = 5 * time.Minute

/*
Strategy is the interface that all expiration rules must follow. The cache never
decides freshness on its own; it asks the configured strategy.
*/
type Strategy interface {

	// IsExpired reports whether the entry is stale at now.
	IsExpired(*types.CacheEntry, time.Time) bool

	// OnAccess is called whenever a fresh entry is read.
	OnAccess(*types.CacheEntry, time.Time)

	// OnWrite is called whenever an entry is written or overwritten.
	OnWrite(*types.CacheEntry, time.Time)
}

// expired is shared by every strategy: an entry is stale once its age reaches its TTL.
func expired(ent *types.CacheEntry, now time.Time) bool {
	return !now.Before(ent.ExpiresAt())
}

func orDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTTL
	}
	return d
}

// This file implements route preloading: warming the cache for routes the user
// is likely to visit next, so the page finds its data already cached.

package preload

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds in-flight loads when New is given limit <= 0.
const DefaultConcurrency = 4

// Cache is the part of the route cache the preloader needs.
type Cache interface {
	Has(key string) bool
	Fetch(ctx context.Context, key string) (any, error)
}

// Report lists what a Warm call did with each distinct key.
type Report struct {
	Loaded  []string
	Skipped []string // already fresh
	Failed  []string
}

/*
Preloader fills the cache for a batch of keys.

Keys that are already fresh are skipped. The others go through the cache's
read-through path, so a preload racing with a real page load for the same key
still produces one Loader call.
*/
type Preloader struct {
	cache  Cache
	limit  int
	logger *zap.Logger
}

func New(c Cache, limit int, logger *zap.Logger) *Preloader {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Preloader{cache: c, limit: limit, logger: logger}
}

/*
Warm loads every key that is not already fresh, at most limit at a time.

One failing key does not stop the rest. Warm returns the first error it saw
along with the full report. Duplicate keys are handled once.
*/
func (p *Preloader) Warm(ctx context.Context, keys ...string) (Report, error) {
	var (
		mu  sync.Mutex
		rep Report
		g   errgroup.Group
	)
	g.SetLimit(p.limit)

	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		g.Go(func() error {
			if p.cache.Has(key) {
				mu.Lock()
				rep.Skipped = append(rep.Skipped, key)
				mu.Unlock()
				return nil
			}

			_, err := p.cache.Fetch(ctx, key)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rep.Failed = append(rep.Failed, key)
				return err
			}
			rep.Loaded = append(rep.Loaded, key)
			return nil
		})
	}

	err := g.Wait()
	p.logger.Debug("preload finished",
		zap.Int("loaded", len(rep.Loaded)),
		zap.Int("skipped", len(rep.Skipped)),
		zap.Int("failed", len(rep.Failed)),
	)
	return rep, err
}

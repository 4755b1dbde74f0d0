package cache

import (
	"github.com/krisalay/routecache/config"
	"github.com/krisalay/routecache/engine"
	"github.com/krisalay/routecache/expiration"
	"github.com/krisalay/routecache/types"
)

/*
NewFromConfig builds the application's cache from a validated Config and starts
the sweeper when the config asks for one. loader and metrics may be nil.
*/
func NewFromConfig(
	cfg *config.Config,
	loader types.Loader,
	metrics types.Metrics,
	opts ...engine.Option,
) (*ShardedCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng := engine.NewCacheEngine(
		&expiration.ExpireAfterWrite{Default: cfg.DefaultTTL},
		loader,
		metrics,
		opts...,
	)

	c := NewShardedCache(cfg.Shards, cfg.Capacity, cfg.EvictionPolicy(), eng)
	if err := c.StartSweeper(cfg.SweepInterval); err != nil {
		return nil, err
	}
	return c, nil
}

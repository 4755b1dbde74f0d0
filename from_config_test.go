package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/krisalay/routecache"
	"github.com/krisalay/routecache/config"
	"github.com/krisalay/routecache/engine"
)

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultTTL = 2 * time.Second
	cfg.Shards = 2
	cfg.Capacity = 2
	cfg.Eviction = "fifo"

	clock := newManualClock()
	c, err := cache.NewFromConfig(cfg, nil, nil, engine.WithClock(clock))
	require.NoError(t, err)
	defer c.Close()

	c.Set("/models", 1)
	assert.Equal(t, 2*time.Second, c.TTL("/models"))

	clock.Advance(2 * time.Second)
	assert.False(t, c.Has("/models"))
}

func TestNewFromConfigStartsSweeper(t *testing.T) {
	cfg := config.Default()
	cfg.SweepInterval = 10 * time.Millisecond

	c, err := cache.NewFromConfig(cfg, nil, nil)
	require.NoError(t, err)
	defer c.Close()

	c.SetWithTTL("k", "v", 15*time.Millisecond)
	require.Eventually(t, func() bool { return c.Size() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestNewFromConfigRejectsInvalid(t *testing.T) {
	cfg := config.Default()
	cfg.Eviction = "LFU"

	_, err := cache.NewFromConfig(cfg, nil, nil)
	assert.Error(t, err)
}

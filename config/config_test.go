package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/routecache/eviction"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigLoading(t *testing.T) {
	path := writeConfig(t, `default_ttl: 30s
shards: 4
capacity: 500
eviction: fifo
sweep_interval: 1m
log_level: debug
redis:
  addr: "localhost:6379"
  prefix: "site:"`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.DefaultTTL)
	assert.Equal(t, 4, cfg.Shards)
	assert.Equal(t, 500, cfg.Capacity)
	assert.Equal(t, eviction.FIFO, cfg.EvictionPolicy())
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "site:", cfg.Redis.Prefix)
}

func TestMissingFieldsTakeDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `shards: 2`))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.DefaultTTL, cfg.DefaultTTL)
	assert.Equal(t, 2, cfg.Shards)
	assert.Equal(t, eviction.LRU, cfg.EvictionPolicy())
	assert.Zero(t, cfg.SweepInterval)
	assert.Equal(t, "route:", cfg.Redis.Prefix)
}

func TestRedisAddrFromEnv(t *testing.T) {
	t.Setenv("ROUTECACHE_REDIS", "redis.internal:6379")

	cfg, err := Load(writeConfig(t, `redis:
  addr_env_var: ROUTECACHE_REDIS`))
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
}

func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name   string
		config string
	}{
		{name: "non-positive ttl", config: `default_ttl: 0s`},
		{name: "too many shards", config: `shards: 4096`},
		{name: "zero shards", config: `shards: 0`},
		{name: "negative capacity", config: `capacity: -1`},
		{name: "capacity below shard count", config: "shards: 3\ncapacity: 3"},
		{name: "unknown eviction", config: `eviction: random`},
		{name: "negative sweep", config: `sweep_interval: -1s`},
		{name: "sub-millisecond sweep", config: `sweep_interval: 100us`},
		{name: "bad log level", config: `log_level: loud`},
		{name: "invalid yaml", config: `default_ttl: [`},
		{name: "bad duration", config: `default_ttl: soon`},
		{name: "unset env var", config: `redis:
  addr_env_var: ROUTECACHE_DEFINITELY_UNSET`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.config))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

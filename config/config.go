package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/krisalay/routecache/eviction"
	"github.com/krisalay/routecache/expiration"
	"github.com/krisalay/routecache/shard"
)

type Config struct {
	// DefaultTTL applies to writes that carry no TTL.
	DefaultTTL time.Duration `yaml:"default_ttl"`

	Shards int `yaml:"shards"`

	// Capacity bounds the total entry count; 0 means unbounded. A bounded cache
	// needs at least one slot per shard, after Shards is rounded up to a power of two.
	Capacity int    `yaml:"capacity"`
	Eviction string `yaml:"eviction"` // LRU, FIFO

	// SweepInterval enables the background sweeper; 0 leaves it off.
	SweepInterval time.Duration `yaml:"sweep_interval"`

	LogLevel string `yaml:"log_level"`

	Redis RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr       string `yaml:"addr"`
	AddrEnvVar string `yaml:"addr_env_var"` // Environment variable holding the address
	Prefix     string `yaml:"prefix"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DefaultTTL: expiration.DefaultTTL,
		Shards:     1,
		Eviction:   string(eviction.LRU),
		LogLevel:   "info",
		Redis:      RedisConfig{Prefix: "route:"},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	if err := cfg.loadSecrets(); err != nil {
		return nil, errors.Wrap(err, "loading secrets")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}

	return cfg, nil
}

func (c *Config) loadSecrets() error {
	if c.Redis.AddrEnvVar == "" {
		return nil
	}
	addr := os.Getenv(c.Redis.AddrEnvVar)
	if addr == "" {
		return errors.Errorf("environment variable %s not set for redis.addr", c.Redis.AddrEnvVar)
	}
	c.Redis.Addr = addr
	return nil
}

// Validate checks ranges and names. Load calls it; callers building a Config by hand should too.
func (c *Config) Validate() error {
	if c.DefaultTTL <= 0 {
		return errors.New("default_ttl must be positive")
	}
	if c.Shards < 1 || c.Shards > 1024 {
		return errors.Errorf("shards must be between 1 and 1024, got %d", c.Shards)
	}
	if c.Capacity < 0 {
		return errors.New("capacity must not be negative")
	}
	if n := shard.RoundUp(c.Shards); c.Capacity > 0 && c.Capacity < n {
		return errors.Errorf("capacity %d is smaller than the shard count %d", c.Capacity, n)
	}
	if _, err := eviction.ParsePolicyType(c.Eviction); err != nil {
		return err
	}
	if c.SweepInterval < 0 {
		return errors.New("sweep_interval must not be negative")
	}
	if c.SweepInterval > 0 && c.SweepInterval < time.Millisecond {
		return errors.Errorf("sweep_interval %s is below 1ms", c.SweepInterval)
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}

// EvictionPolicy returns the parsed eviction policy. Call after Validate.
func (c *Config) EvictionPolicy() eviction.PolicyType {
	p, _ := eviction.ParsePolicyType(c.Eviction)
	return p
}

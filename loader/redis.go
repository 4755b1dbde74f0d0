package loader

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound means the second tier has no value for the key either.
var ErrNotFound = errors.New("loader: key not found")

// stringGetter is the one Redis command the loader uses. *redis.Client satisfies it.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

/*
Redis loads route payloads from a shared Redis tier. The in-memory cache sits in
front of it: a local miss becomes GET prefix+key, and the string reply is cached
locally with the default TTL.
*/
type Redis struct {
	client stringGetter
	prefix string
}

func NewRedis(client stringGetter, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Dial connects a client from an address. Connection errors show up on first use.
func Dial(addr, prefix string) (*Redis, *redis.Client) {
	c := redis.NewClient(&redis.Options{Addr: addr})
	return NewRedis(c, prefix), c
}

func (r *Redis) Load(ctx context.Context, key string) (any, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get")
	}
	return v, nil
}

package types

import "context"

/*
Loader fetches a value the cache does not hold.

It is only used by the read-through path (Fetch and the preloader).
Plain Get never calls it: a miss there is a normal, expected outcome.
*/
type Loader interface {
	Load(ctx context.Context, key string) (any, error)
}

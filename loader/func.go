// Package loader provides types.Loader implementations for the read-through path.
package loader

import "context"

// Func adapts a plain function to types.Loader.
type Func func(ctx context.Context, key string) (any, error)

func (f Func) Load(ctx context.Context, key string) (any, error) {
	return f(ctx, key)
}

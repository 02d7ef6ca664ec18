package cache

import (
	"context"

	"github.com/shopfront/go-client/sys"
)

// Writer performs the remote write of a mutation.
type Writer func(ctx context.Context) (any, error)

// mutate issues the write and applies invalidation on success, strictly
// before the caller sees the result.
func (s *Store) mutate(ctx context.Context, affected []Key, write Writer) (any, error) {
	val, err := write(ctx)
	if err != nil {
		// Failed writes leave every affected entry untouched.
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		// The initiating consumer is gone; discard without touching
		// the cache.
		return nil, err
	}
	s.Invalidate(affected...)
	return val, nil
}

// Mutate issues a remote write and, on success, invalidates the affected
// keys before yielding the result, so a consumer reacting to the result
// by re-querying an affected key always refetches. On failure the cache
// is untouched and the error is carried in the Result.
//
// Mutations are never coalesced. If two mutations affecting the same key
// run concurrently, each applies invalidation when it completes, in
// completion order — an accepted race inherited from the original design.
func Mutate[T any](ctx context.Context, s *Store, affected []Key, write func(ctx context.Context) (T, error)) sys.Result[T] {
	val, err := s.mutate(ctx, affected, func(ctx context.Context) (any, error) {
		return write(ctx)
	})
	if err != nil {
		return sys.Err[T](err)
	}
	typed, ok := val.(T)
	if !ok {
		var zero T
		return sys.Ok(zero)
	}
	return sys.Ok(typed)
}

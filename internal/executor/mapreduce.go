package executor

import (
	"context"

	"github.com/dshills/gochunk/pkg/types"
)

// Map transforms every element, returning a chunk list with the same shape
// as chunks. The input is not modified.
func Map[T, R any](ctx context.Context, e *Executor, chunks types.ChunkList[T], fn func(T) (R, error)) (types.ChunkList[R], error) {
	out := make(types.ChunkList[R], len(chunks))

	err := orDefault(e).run(ctx, "map", len(chunks), func(_ context.Context, i int) error {
		c := chunks[i]
		mapped := make(types.Chunk[R], len(c))
		for j, v := range c {
			r, err := fn(v)
			if err != nil {
				return err
			}
			mapped[j] = r
		}
		out[i] = mapped
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MapChunks computes one result per chunk, in input order
func MapChunks[T, R any](ctx context.Context, e *Executor, chunks types.ChunkList[T], fn func(ctx context.Context, c types.Chunk[T]) (R, error)) ([]R, error) {
	out := make([]R, len(chunks))

	err := orDefault(e).run(ctx, "map_chunks", len(chunks), func(ctx context.Context, i int) error {
		r, err := fn(ctx, chunks[i])
		if err != nil {
			return err
		}
		out[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reduce folds every chunk concurrently, then folds the partial results in
// input order starting from initial. For an associative and commutative fn
// the result equals a sequential fold over chunks.Flatten().
func Reduce[T any](ctx context.Context, e *Executor, chunks types.ChunkList[T], fn func(T, T) T, initial T) (T, error) {
	type partial struct {
		value T
		ok    bool
	}
	partials := make([]partial, len(chunks))

	err := orDefault(e).run(ctx, "reduce", len(chunks), func(_ context.Context, i int) error {
		c := chunks[i]
		if len(c) == 0 {
			return nil
		}
		acc := c[0]
		for _, v := range c[1:] {
			acc = fn(acc, v)
		}
		partials[i] = partial{value: acc, ok: true}
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	result := initial
	for _, p := range partials {
		if p.ok {
			result = fn(result, p.value)
		}
	}
	return result, nil
}

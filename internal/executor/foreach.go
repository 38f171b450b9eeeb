package executor

import (
	"context"

	"github.com/dshills/gochunk/pkg/types"
)

// ForEach applies op to every element in place. Elements of one chunk are
// visited in order; a chunk stops at its first failing element.
func ForEach[T any](ctx context.Context, e *Executor, chunks types.ChunkList[T], op func(*T) error) error {
	return orDefault(e).run(ctx, "for_each", len(chunks), func(_ context.Context, i int) error {
		c := chunks[i]
		for j := range c {
			if err := op(&c[j]); err != nil {
				return err
			}
		}
		return nil
	})
}

// ForEachChunk calls op once per chunk with the chunk's index. The chunk is
// passed without copying, so op may modify its elements.
func ForEachChunk[T any](ctx context.Context, e *Executor, chunks types.ChunkList[T], op func(ctx context.Context, index int, c types.Chunk[T]) error) error {
	return orDefault(e).run(ctx, "for_each_chunk", len(chunks), func(ctx context.Context, i int) error {
		return op(ctx, i, chunks[i])
	})
}

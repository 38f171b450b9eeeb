package executor

import (
	"context"
	"fmt"
	"testing"

	"github.com/dshills/gochunk/pkg/types"
)

func benchChunks(n, size int) types.ChunkList[int] {
	chunks := make(types.ChunkList[int], n)
	for i := range chunks {
		c := make(types.Chunk[int], size)
		for j := range c {
			c[j] = i*size + j
		}
		chunks[i] = c
	}
	return chunks
}

func BenchmarkReduce(b *testing.B) {
	chunks := benchChunks(1024, 256)
	add := func(a, b int) int { return a + b }

	for _, workers := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			e := New(&Config{Workers: workers})
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = Reduce(context.Background(), e, chunks, add, 0)
			}
		})
	}
}

func BenchmarkForEach(b *testing.B) {
	chunks := benchChunks(1024, 256)
	e := New(&Config{Workers: 8})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ForEach(context.Background(), e, chunks, func(v *int) error {
			*v++
			return nil
		})
	}
}

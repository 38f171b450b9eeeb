package policy

import (
	"github.com/dshills/gochunk/pkg/types"
)

// Kind identifies a boundary policy variant
type Kind string

const (
	KindPattern          Kind = "pattern"
	KindVariance         Kind = "variance"
	KindEntropy          Kind = "entropy"
	KindMultiCriteria    Kind = "multi_criteria"
	KindDynamicThreshold Kind = "dynamic_threshold"
	KindSimilarity       Kind = "similarity"
)

// Policy partitions a sequence into chunks
type Policy[T any] interface {
	Kind() Kind
	Apply(seq []T) types.ChunkList[T]
}

// BoundaryPolicy is a Policy whose decisions are made in a single
// left-to-right pass. NewPass returns the mutable state for one such pass;
// it is never shared between passes.
type BoundaryPolicy[T any] interface {
	Policy[T]
	NewPass() Pass[T]
}

// Pass is the per-pass boundary state of a policy.
//
// Segment calls CloseBefore for every element arriving while the buffer is
// non-empty, then CloseAfter once the element has been appended. Reset is
// called each time a chunk closes.
type Pass[T any] interface {
	// CloseBefore reports whether buf must be closed before x is appended
	CloseBefore(buf []T, x T) bool

	// CloseAfter reports whether buf must be closed now that its last
	// element has been appended
	CloseAfter(buf []T) bool

	// Reset clears chunk-scoped accumulators after a chunk closes
	Reset()
}

// Segment runs one segmentation pass of p over seq.
//
// The returned chunks are copies of contiguous ranges of seq and concatenate
// back to seq exactly. An empty sequence yields an empty list; a trailing
// buffer is always flushed as the final chunk.
func Segment[T any](seq []T, p BoundaryPolicy[T]) types.ChunkList[T] {
	if len(seq) == 0 {
		return make(types.ChunkList[T], 0)
	}
	return segmentWith(seq, p.NewPass())
}

func segmentWith[T any](seq []T, pass Pass[T]) types.ChunkList[T] {
	chunks := make(types.ChunkList[T], 0)
	start := 0

	emit := func(end int) {
		chunk := make(types.Chunk[T], end-start)
		copy(chunk, seq[start:end])
		chunks = append(chunks, chunk)
		start = end
		pass.Reset()
	}

	for i, x := range seq {
		if i > start && pass.CloseBefore(seq[start:i], x) {
			emit(i)
		}
		if pass.CloseAfter(seq[start : i+1]) {
			emit(i + 1)
		}
	}

	if start < len(seq) {
		emit(len(seq))
	}

	return chunks
}

// nopAfter can be embedded by passes that never close after an append
type nopAfter[T any] struct{}

func (nopAfter[T]) CloseAfter([]T) bool { return false }

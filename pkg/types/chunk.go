package types

// Chunk represents a contiguous, ordered run of elements cut from a sequence.
// Chunks produced by segmentation own their backing array.
type Chunk[T any] []T

// Len returns the number of elements in the chunk
func (c Chunk[T]) Len() int {
	return len(c)
}

// Clone returns a copy of the chunk with its own backing array
func (c Chunk[T]) Clone() Chunk[T] {
	if c == nil {
		return nil
	}
	out := make(Chunk[T], len(c))
	copy(out, c)
	return out
}

// ChunkList is the ordered output of a segmentation pass
type ChunkList[T any] []Chunk[T]

// Flatten concatenates every chunk in list order.
// For any list produced by segmentation the result equals the input sequence.
func (l ChunkList[T]) Flatten() []T {
	total := 0
	for _, c := range l {
		total += len(c)
	}

	out := make([]T, 0, total)
	for _, c := range l {
		out = append(out, c...)
	}
	return out
}

// Sizes returns the length of each chunk in list order
func (l ChunkList[T]) Sizes() []int {
	sizes := make([]int, len(l))
	for i, c := range l {
		sizes[i] = len(c)
	}
	return sizes
}

// Clone returns a deep copy of the list
func (l ChunkList[T]) Clone() ChunkList[T] {
	if l == nil {
		return nil
	}
	out := make(ChunkList[T], len(l))
	for i, c := range l {
		out[i] = c.Clone()
	}
	return out
}

// ChunkGroup holds the leaf chunks one input chunk was split into.
// A chunk that was not split yields a group containing only itself.
type ChunkGroup[T any] []Chunk[T]

// ChunkForest is the output of composition: one group per input chunk,
// in input order.
type ChunkForest[T any] []ChunkGroup[T]

// Leaves returns every leaf chunk of the forest in order
func (f ChunkForest[T]) Leaves() ChunkList[T] {
	var n int
	for _, g := range f {
		n += len(g)
	}

	out := make(ChunkList[T], 0, n)
	for _, g := range f {
		out = append(out, g...)
	}
	return out
}

// Flatten concatenates every leaf in order. For a forest composed from a
// ChunkList this equals the list's Flatten.
func (f ChunkForest[T]) Flatten() []T {
	return f.Leaves().Flatten()
}

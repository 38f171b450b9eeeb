package compose

import (
	"github.com/dshills/gochunk/internal/policy"
	"github.com/dshills/gochunk/pkg/types"
)

// Hierarchical splits chunks at depth d with levels[d]. Chunks deeper than
// the level list are leaves, so len(levels) bounds the depth.
type Hierarchical[T any] struct {
	levels []policy.Policy[T]
	engine[T]
}

// NewHierarchical creates a Hierarchical composer. An empty level list is
// valid and leaves every chunk unsplit.
func NewHierarchical[T any](levels []policy.Policy[T], minChunkSize int) (*Hierarchical[T], error) {
	for i, p := range levels {
		if p == nil {
			return nil, types.NewConfigError("level policy", i, types.ErrNilPolicy)
		}
	}
	if err := checkMinChunkSize(minChunkSize); err != nil {
		return nil, err
	}

	h := &Hierarchical[T]{levels: append([]policy.Policy[T](nil), levels...)}
	h.engine = engine[T]{
		minChunkSize: minChunkSize,
		split: func(c types.Chunk[T], depth int) (types.ChunkList[T], bool) {
			if depth >= len(h.levels) {
				return nil, false
			}
			return h.levels[depth].Apply(c), true
		},
	}
	return h, nil
}

// Kind returns KindHierarchical
func (h *Hierarchical[T]) Kind() policy.Kind { return KindHierarchical }

// Levels returns the number of policy levels
func (h *Hierarchical[T]) Levels() int { return len(h.levels) }

// Compose splits every chunk level by level
func (h *Hierarchical[T]) Compose(chunks types.ChunkList[T]) types.ChunkForest[T] {
	return Forest(h.tree(chunks))
}

// Tree splits every chunk level by level, keeping depth information
func (h *Hierarchical[T]) Tree(chunks types.ChunkList[T]) []*Node[T] {
	return h.tree(chunks)
}

// Apply composes seq as a single chunk and returns its leaves
func (h *Hierarchical[T]) Apply(seq []T) types.ChunkList[T] {
	return h.apply(seq)
}

package compose

import (
	"github.com/dshills/gochunk/internal/policy"
	"github.com/dshills/gochunk/pkg/types"
)

// Recursive re-applies one policy to every chunk larger than minChunkSize
// until maxDepth policy applications have been made along a branch
type Recursive[T any] struct {
	base     policy.Policy[T]
	maxDepth int
	engine[T]
}

// NewRecursive creates a Recursive composer
func NewRecursive[T any](base policy.Policy[T], maxDepth, minChunkSize int) (*Recursive[T], error) {
	if base == nil {
		return nil, types.NewConfigError("base policy", nil, types.ErrNilPolicy)
	}
	if maxDepth < 0 {
		return nil, types.NewConfigError("max depth", maxDepth, types.ErrInvalidDepth)
	}
	if err := checkMinChunkSize(minChunkSize); err != nil {
		return nil, err
	}

	r := &Recursive[T]{base: base, maxDepth: maxDepth}
	r.engine = engine[T]{
		minChunkSize: minChunkSize,
		split: func(c types.Chunk[T], depth int) (types.ChunkList[T], bool) {
			if depth >= r.maxDepth {
				return nil, false
			}
			return r.base.Apply(c), true
		},
	}
	return r, nil
}

// Kind returns KindRecursive
func (r *Recursive[T]) Kind() policy.Kind { return KindRecursive }

// MaxDepth returns the configured depth bound
func (r *Recursive[T]) MaxDepth() int { return r.maxDepth }

// Compose splits every chunk recursively
func (r *Recursive[T]) Compose(chunks types.ChunkList[T]) types.ChunkForest[T] {
	return Forest(r.tree(chunks))
}

// Tree splits every chunk recursively, keeping depth information
func (r *Recursive[T]) Tree(chunks types.ChunkList[T]) []*Node[T] {
	return r.tree(chunks)
}

// Apply composes seq as a single chunk and returns its leaves
func (r *Recursive[T]) Apply(seq []T) types.ChunkList[T] {
	return r.apply(seq)
}

package compose

import (
	"github.com/dshills/gochunk/internal/policy"
	"github.com/dshills/gochunk/pkg/types"
)

// Predicate decides whether a chunk should be split
type Predicate[T any] func(types.Chunk[T]) bool

// Conditional applies its policy once, to chunks accepted by a predicate.
// It does not recurse on its own; nest it inside Recursive or Hierarchical
// for that.
type Conditional[T any] struct {
	base policy.Policy[T]
	pred Predicate[T]
	engine[T]
}

// NewConditional creates a Conditional composer
func NewConditional[T any](base policy.Policy[T], pred Predicate[T], minChunkSize int) (*Conditional[T], error) {
	if base == nil {
		return nil, types.NewConfigError("base policy", nil, types.ErrNilPolicy)
	}
	if pred == nil {
		return nil, types.NewConfigError("condition", nil, types.ErrInvalidPredicate)
	}
	if err := checkMinChunkSize(minChunkSize); err != nil {
		return nil, err
	}

	c := &Conditional[T]{base: base, pred: pred}
	c.engine = engine[T]{
		minChunkSize: minChunkSize,
		split: func(chunk types.Chunk[T], depth int) (types.ChunkList[T], bool) {
			if depth > 0 || !c.pred(chunk) {
				return nil, false
			}
			return c.base.Apply(chunk), true
		},
	}
	return c, nil
}

// Kind returns KindConditional
func (c *Conditional[T]) Kind() policy.Kind { return KindConditional }

// Compose splits the chunks accepted by the predicate
func (c *Conditional[T]) Compose(chunks types.ChunkList[T]) types.ChunkForest[T] {
	return Forest(c.tree(chunks))
}

// Tree splits the chunks accepted by the predicate, keeping depth information
func (c *Conditional[T]) Tree(chunks types.ChunkList[T]) []*Node[T] {
	return c.tree(chunks)
}

// Apply splits seq if the predicate accepts it
func (c *Conditional[T]) Apply(seq []T) types.ChunkList[T] {
	return c.apply(seq)
}

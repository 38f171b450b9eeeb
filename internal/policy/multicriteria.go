package policy

import (
	"math"

	"github.com/dshills/gochunk/pkg/types"
)

// MultiCriteria closes a chunk when it reaches minSize elements, or before an
// element whose distance from its predecessor exceeds the similarity
// threshold. Either trigger is sufficient.
type MultiCriteria[T types.Number] struct {
	minSize    int
	similarity float64
}

// NewMultiCriteria creates a MultiCriteria policy
func NewMultiCriteria[T types.Number](minSize int, similarity float64) (*MultiCriteria[T], error) {
	if minSize <= 0 {
		return nil, types.NewConfigError("min size", minSize, types.ErrInvalidSize)
	}
	if math.IsNaN(similarity) || similarity < 0 {
		return nil, types.NewConfigError("similarity threshold", similarity, types.ErrInvalidThreshold)
	}
	return &MultiCriteria[T]{minSize: minSize, similarity: similarity}, nil
}

// Kind returns KindMultiCriteria
func (m *MultiCriteria[T]) Kind() Kind { return KindMultiCriteria }

// NewPass returns fresh pass state
func (m *MultiCriteria[T]) NewPass() Pass[T] { return multiPass[T]{m: m} }

// Apply segments seq
func (m *MultiCriteria[T]) Apply(seq []T) types.ChunkList[T] { return Segment[T](seq, m) }

type multiPass[T types.Number] struct {
	m *MultiCriteria[T]
}

func (s multiPass[T]) CloseBefore(buf []T, x T) bool {
	return types.AbsDiff(x, buf[len(buf)-1]) > s.m.similarity
}

func (s multiPass[T]) CloseAfter(buf []T) bool {
	return len(buf) >= s.m.minSize
}

func (multiPass[T]) Reset() {}

package policy

import (
	"math"

	"github.com/dshills/gochunk/pkg/types"
)

// Similarity closes a chunk before an element whose inverse-distance
// similarity to its predecessor, 1/(1+|x-prev|), falls below the threshold
type Similarity[T types.Number] struct {
	threshold float64
}

// NewSimilarity creates a Similarity policy. threshold must be in (0, 1].
func NewSimilarity[T types.Number](threshold float64) (*Similarity[T], error) {
	if math.IsNaN(threshold) || threshold <= 0 || threshold > 1 {
		return nil, types.NewConfigError("similarity threshold", threshold, types.ErrInvalidThreshold)
	}
	return &Similarity[T]{threshold: threshold}, nil
}

// Kind returns KindSimilarity
func (s *Similarity[T]) Kind() Kind { return KindSimilarity }

// Cutoff returns the distance above which a boundary is placed
func (s *Similarity[T]) Cutoff() float64 { return 1/s.threshold - 1 }

// NewPass returns fresh pass state
func (s *Similarity[T]) NewPass() Pass[T] { return similarityPass[T]{threshold: s.threshold} }

// Apply segments seq
func (s *Similarity[T]) Apply(seq []T) types.ChunkList[T] { return Segment[T](seq, s) }

// Score returns the similarity of two elements in (0, 1]
func Score[T types.Number](a, b T) float64 {
	return 1 / (1 + types.AbsDiff(a, b))
}

type similarityPass[T types.Number] struct {
	nopAfter[T]
	threshold float64
}

func (p similarityPass[T]) CloseBefore(buf []T, x T) bool {
	return Score(x, buf[len(buf)-1]) < p.threshold
}

func (similarityPass[T]) Reset() {}

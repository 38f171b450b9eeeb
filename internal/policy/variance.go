package policy

import (
	"math"

	"github.com/dshills/gochunk/pkg/types"
)

// Variance closes a chunk when admitting the next element would push the
// population variance of the chunk above the threshold. The offending element
// opens the next chunk.
type Variance[T types.Number] struct {
	threshold float64
}

// NewVariance creates a Variance policy. threshold must be >= 0.
func NewVariance[T types.Number](threshold float64) (*Variance[T], error) {
	if math.IsNaN(threshold) || threshold < 0 {
		return nil, types.NewConfigError("variance threshold", threshold, types.ErrInvalidThreshold)
	}
	return &Variance[T]{threshold: threshold}, nil
}

// Kind returns KindVariance
func (v *Variance[T]) Kind() Kind { return KindVariance }

// Threshold returns the configured variance limit
func (v *Variance[T]) Threshold() float64 { return v.threshold }

// NewPass returns fresh pass state
func (v *Variance[T]) NewPass() Pass[T] { return &variancePass[T]{threshold: v.threshold} }

// Apply segments seq
func (v *Variance[T]) Apply(seq []T) types.ChunkList[T] { return Segment[T](seq, v) }

// variancePass keeps the running mean and M2 (sum of squared deviations) of
// the open chunk, updated with Welford's method so large offsets do not
// cancel out.
type variancePass[T types.Number] struct {
	threshold float64
	n         float64
	mean      float64
	m2        float64
}

func (s *variancePass[T]) CloseBefore(_ []T, x T) bool {
	f := float64(x)
	n := s.n + 1
	delta := f - s.mean
	mean := s.mean + delta/n
	m2 := s.m2 + delta*(f-mean)

	if m2/n > s.threshold {
		return true
	}

	s.n, s.mean, s.m2 = n, mean, m2
	return false
}

func (s *variancePass[T]) CloseAfter(buf []T) bool {
	// the first element of a chunk never goes through CloseBefore
	if len(buf) == 1 {
		s.n, s.mean, s.m2 = 1, float64(buf[0]), 0
	}
	return false
}

func (s *variancePass[T]) Reset() {
	s.n, s.mean, s.m2 = 0, 0, 0
}

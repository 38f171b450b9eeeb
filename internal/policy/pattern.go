package policy

import (
	"github.com/dshills/gochunk/pkg/types"
)

// PatternBased closes chunks either at elements matching a predicate or
// every k elements. The two modes are exclusive and fixed at construction.
type PatternBased[T any] struct {
	match func(T) bool
	size  int
}

// NewPatternPredicate creates a PatternBased policy that starts a new chunk
// at every element matching p (unless the current chunk is empty)
func NewPatternPredicate[T any](p func(T) bool) (*PatternBased[T], error) {
	if p == nil {
		return nil, types.NewConfigError("pattern predicate", nil, types.ErrInvalidPredicate)
	}
	return &PatternBased[T]{match: p}, nil
}

// NewPatternSize creates a PatternBased policy that closes a chunk every k elements
func NewPatternSize[T any](k int) (*PatternBased[T], error) {
	if k <= 0 {
		return nil, types.NewConfigError("pattern size", k, types.ErrInvalidSize)
	}
	return &PatternBased[T]{size: k}, nil
}

// Kind returns KindPattern
func (p *PatternBased[T]) Kind() Kind { return KindPattern }

// SizeMode reports whether the policy splits by count
func (p *PatternBased[T]) SizeMode() bool { return p.match == nil }

// NewPass returns fresh pass state
func (p *PatternBased[T]) NewPass() Pass[T] { return patternPass[T]{p: p} }

// Apply segments seq
func (p *PatternBased[T]) Apply(seq []T) types.ChunkList[T] { return Segment[T](seq, p) }

type patternPass[T any] struct {
	p *PatternBased[T]
}

func (s patternPass[T]) CloseBefore(_ []T, x T) bool {
	return s.p.match != nil && s.p.match(x)
}

func (s patternPass[T]) CloseAfter(buf []T) bool {
	return s.p.match == nil && len(buf) >= s.p.size
}

func (patternPass[T]) Reset() {}

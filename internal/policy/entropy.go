package policy

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/dshills/gochunk/pkg/types"
)

// Entropy closes a chunk when the base-2 Shannon entropy of its value
// distribution would exceed the threshold. Only chunks of two or more
// elements are measured.
type Entropy[T comparable] struct {
	threshold float64
}

// NewEntropy creates an Entropy policy. threshold must be >= 0 (bits).
func NewEntropy[T comparable](threshold float64) (*Entropy[T], error) {
	if math.IsNaN(threshold) || threshold < 0 {
		return nil, types.NewConfigError("entropy threshold", threshold, types.ErrInvalidThreshold)
	}
	return &Entropy[T]{threshold: threshold}, nil
}

// Kind returns KindEntropy
func (e *Entropy[T]) Kind() Kind { return KindEntropy }

// Threshold returns the configured entropy limit in bits
func (e *Entropy[T]) Threshold() float64 { return e.threshold }

// NewPass returns fresh pass state
func (e *Entropy[T]) NewPass() Pass[T] {
	return &entropyPass[T]{threshold: e.threshold, freq: make(map[T]int)}
}

// Apply segments seq
func (e *Entropy[T]) Apply(seq []T) types.ChunkList[T] { return Segment[T](seq, e) }

type entropyPass[T comparable] struct {
	threshold float64
	freq      map[T]int
	n         int
	probs     []float64
}

func (s *entropyPass[T]) CloseBefore(_ []T, x T) bool {
	s.freq[x]++
	s.n++

	if s.n >= 2 && s.entropy() > s.threshold {
		// x belongs to the next chunk
		s.freq[x]--
		if s.freq[x] == 0 {
			delete(s.freq, x)
		}
		s.n--
		return true
	}
	return false
}

func (s *entropyPass[T]) CloseAfter(buf []T) bool {
	if len(buf) == 1 {
		s.freq[buf[0]] = 1
		s.n = 1
	}
	return false
}

func (s *entropyPass[T]) Reset() {
	clear(s.freq)
	s.n = 0
}

func (s *entropyPass[T]) entropy() float64 {
	s.probs = s.probs[:0]
	total := float64(s.n)
	for _, c := range s.freq {
		s.probs = append(s.probs, float64(c)/total)
	}
	return stat.Entropy(s.probs) / math.Ln2
}

// ShannonEntropy returns the base-2 entropy of the value distribution of c
func ShannonEntropy[T comparable](c []T) float64 {
	if len(c) == 0 {
		return 0
	}
	freq := make(map[T]int, len(c))
	for _, v := range c {
		freq[v]++
	}
	probs := make([]float64, 0, len(freq))
	for _, n := range freq {
		probs = append(probs, float64(n)/float64(len(c)))
	}
	return stat.Entropy(probs) / math.Ln2
}

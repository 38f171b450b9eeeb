package policy

import (
	"math"

	"github.com/dshills/gochunk/pkg/types"
)

// DynamicThreshold closes a chunk before an element that differs from its
// predecessor by more than the current threshold. Every closed chunk tightens
// the threshold: next = max(min, current*decay).
//
// The threshold lives in the pass, so each Apply starts again from the
// initial value.
type DynamicThreshold[T types.Number] struct {
	initial float64
	decay   float64
	min     float64
}

// NewDynamicThreshold creates a DynamicThreshold policy.
// initial must be > 0, decay in (0, 1] and 0 <= min <= initial.
func NewDynamicThreshold[T types.Number](initial, decay, minThreshold float64) (*DynamicThreshold[T], error) {
	if math.IsNaN(initial) || initial <= 0 {
		return nil, types.NewConfigError("initial threshold", initial, types.ErrInvalidThreshold)
	}
	if math.IsNaN(decay) || decay <= 0 || decay > 1 {
		return nil, types.NewConfigError("decay factor", decay, types.ErrInvalidThreshold)
	}
	if math.IsNaN(minThreshold) || minThreshold < 0 || minThreshold > initial {
		return nil, types.NewConfigError("min threshold", minThreshold, types.ErrInvalidThreshold)
	}
	return &DynamicThreshold[T]{initial: initial, decay: decay, min: minThreshold}, nil
}

// Kind returns KindDynamicThreshold
func (d *DynamicThreshold[T]) Kind() Kind { return KindDynamicThreshold }

// NewPass returns fresh pass state
func (d *DynamicThreshold[T]) NewPass() Pass[T] { return d.newPass() }

// Apply segments seq
func (d *DynamicThreshold[T]) Apply(seq []T) types.ChunkList[T] { return Segment[T](seq, d) }

// ApplyTrace segments seq and also returns, for each chunk, the threshold
// that was in force when it closed
func (d *DynamicThreshold[T]) ApplyTrace(seq []T) (types.ChunkList[T], []float64) {
	if len(seq) == 0 {
		return make(types.ChunkList[T], 0), nil
	}
	pass := d.newPass()
	chunks := segmentWith[T](seq, pass)
	return chunks, pass.history
}

func (d *DynamicThreshold[T]) newPass() *dynamicPass[T] {
	return &dynamicPass[T]{d: d, current: d.initial}
}

type dynamicPass[T types.Number] struct {
	nopAfter[T]
	d       *DynamicThreshold[T]
	current float64
	history []float64
}

func (s *dynamicPass[T]) CloseBefore(buf []T, x T) bool {
	return types.AbsDiff(x, buf[len(buf)-1]) > s.current
}

func (s *dynamicPass[T]) Reset() {
	s.history = append(s.history, s.current)
	s.current = math.Max(s.d.min, s.current*s.d.decay)
}

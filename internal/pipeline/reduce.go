package pipeline

import (
	"context"
	"fmt"
	"math"

	"github.com/dshills/gochunk/internal/executor"
)

// Op names a built-in reduction
type Op string

// Supported reductions
const (
	OpSum     Op = "sum"
	OpProduct Op = "product"
	OpMin     Op = "min"
	OpMax     Op = "max"
)

// Ops lists the supported reductions
var Ops = []Op{OpSum, OpProduct, OpMin, OpMax}

// ParseOp validates a reduction name
func ParseOp(s string) (Op, error) {
	for _, op := range Ops {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown reduce operation: %s", s)
}

// reducer returns the operator and its identity. min and max of an empty
// sequence are +Inf and -Inf.
func reducer(op Op) (func(a, b float64) float64, float64, error) {
	switch op {
	case OpSum:
		return func(a, b float64) float64 { return a + b }, 0, nil
	case OpProduct:
		return func(a, b float64) float64 { return a * b }, 1, nil
	case OpMin:
		return math.Min, math.Inf(1), nil
	case OpMax:
		return math.Max, math.Inf(-1), nil
	default:
		return nil, 0, fmt.Errorf("unknown reduce operation: %s", op)
	}
}

// ReduceResult is the output of Reduce
type ReduceResult struct {
	Op     Op      `json:"op"`
	Value  float64 `json:"value"`
	Chunks int     `json:"chunks"`
}

// Reduce segments seq and folds it with op
func (p *Pipeline) Reduce(ctx context.Context, seq []float64, op Op) (*ReduceResult, error) {
	fn, initial, err := reducer(op)
	if err != nil {
		return nil, err
	}

	chunks := p.Segment(seq)
	value, err := executor.Reduce(ctx, p.exec, chunks, fn, initial)
	if err != nil {
		return nil, fmt.Errorf("failed to reduce chunks: %w", err)
	}

	return &ReduceResult{Op: op, Value: value, Chunks: len(chunks)}, nil
}

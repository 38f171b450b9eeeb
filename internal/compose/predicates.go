package compose

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dshills/gochunk/pkg/types"
)

// VarianceAbove accepts chunks whose population variance exceeds x
func VarianceAbove[T types.Number](x float64) Predicate[T] {
	return func(c types.Chunk[T]) bool {
		if len(c) < 2 {
			return false
		}
		return stat.PopVariance(toFloats(c), nil) > x
	}
}

// RangeAbove accepts chunks whose max-min spread exceeds x
func RangeAbove[T types.Number](x float64) Predicate[T] {
	return func(c types.Chunk[T]) bool {
		if len(c) < 2 {
			return false
		}
		f := toFloats(c)
		return floats.Max(f)-floats.Min(f) > x
	}
}

// SizeAbove accepts chunks with more than n elements
func SizeAbove[T any](n int) Predicate[T] {
	return func(c types.Chunk[T]) bool {
		return len(c) > n
	}
}

// All accepts chunks accepted by every predicate
func All[T any](preds ...Predicate[T]) Predicate[T] {
	return func(c types.Chunk[T]) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

func toFloats[T types.Number](c types.Chunk[T]) []float64 {
	f := make([]float64, len(c))
	for i, v := range c {
		f[i] = float64(v)
	}
	return f
}

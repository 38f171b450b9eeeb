package types

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number is the element constraint for policies that need subtraction and
// absolute difference.
type Number interface {
	constraints.Integer | constraints.Float
}

// AbsDiff returns |a - b| as a float64. The subtraction happens in float64
// so signed operands cannot overflow and unsigned ones cannot wrap.
func AbsDiff[T Number](a, b T) float64 {
	return math.Abs(float64(a) - float64(b))
}

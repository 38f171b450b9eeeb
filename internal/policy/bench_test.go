package policy

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func benchSequence(n int) []float64 {
	rng := rand.New(rand.NewPCG(1, 2))
	seq := make([]float64, n)
	for i := range seq {
		seq[i] = rng.NormFloat64() * 10
	}
	return seq
}

func BenchmarkApply(b *testing.B) {
	seq := benchSequence(100_000)

	pattern, _ := NewPatternSize[float64](64)
	variance, _ := NewVariance[float64](50)
	entropy, _ := NewEntropy[float64](3)
	multi, _ := NewMultiCriteria[float64](64, 20)
	dynamic, _ := NewDynamicThreshold[float64](50, 0.9, 5)
	similarity, _ := NewSimilarity[float64](20)

	policies := []Policy[float64]{pattern, variance, entropy, multi, dynamic, similarity}

	for _, p := range policies {
		b.Run(fmt.Sprintf("%s/n=%d", p.Kind(), len(seq)), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = p.Apply(seq)
			}
		})
	}
}

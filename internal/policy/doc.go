// Package policy implements boundary policies and the segmentation pass that
// applies them.
//
// A policy decides where one chunk ends and the next begins. Segment scans a
// sequence once, left to right, asking the policy's per-pass state whether to
// close the current chunk before or after each element:
//
//	v, err := policy.NewVariance[float64](1.0)
//	if err != nil {
//	    log.Fatal(err) // *types.ConfigError
//	}
//	chunks := v.Apply([]float64{1.0, 1.1, 1.2, 5.0, 5.1, 5.2})
//	// [[1 1.1 1.2] [5 5.1 5.2]]
//
// # Variants
//
// The variant set is closed and selected at configuration time:
//   - PatternBased: split before elements matching a predicate, or every k elements
//   - Variance: split when running population variance would exceed a threshold
//   - Entropy: split when base-2 Shannon entropy of the chunk would exceed a threshold
//   - MultiCriteria: split at a size limit or at a jump between neighbours
//   - DynamicThreshold: split at jumps above a threshold that decays per chunk
//   - Similarity: split when 1/(1+|x-prev|) falls below a threshold
//
// FromConfig maps a config.PolicyConfig to one of these.
//
// # Guarantees
//
// For every policy and input the chunks concatenate back to the input, no
// chunk is empty, an empty input yields an empty list and the trailing buffer
// is always flushed. Invalid parameters are rejected by the constructors,
// never at Apply time.
package policy

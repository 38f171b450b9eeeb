// Package types provides shared type definitions for gochunk.
//
// This package defines the data model used by the segmentation policies, the
// composition engine and the concurrent executor.
//
// # Core Types
//
// Chunk is a contiguous, ordered run of elements cut from an input sequence:
//
//	chunks := types.ChunkList[float64]{
//	    {1.0, 1.1, 1.2},
//	    {5.0, 5.1, 5.2},
//	}
//
// ChunkList is the flat, ordered output of one segmentation pass. Concatenating
// its chunks reproduces the input sequence exactly (the partition invariant):
//
//	if !slices.Equal(chunks.Flatten(), seq) {
//	    log.Fatal("partition broken")
//	}
//
// ChunkForest is the output of composition: one ChunkGroup per input chunk,
// each group holding the leaf chunks that input chunk was split into.
//
// # Element Types
//
// Policies that only look at equality (Entropy) or at a caller predicate
// (PatternBased) accept any element type. Policies that measure distances or
// variance are constrained to Number:
//
//	type Number interface {
//	    constraints.Integer | constraints.Float
//	}
//
// # Errors
//
// Configuration problems are reported at construction time as *ConfigError,
// wrapping one of the sentinel errors so callers can use errors.Is:
//
//	_, err := policy.NewVariance[float64](-1)
//	errors.Is(err, types.ErrInvalidThreshold) // true
//
// Failures of caller-supplied operations run by the executor surface as a
// single *OperationError carrying the index of the failing chunk.
package types

// Package pipeline runs the end-to-end chunking flow for numeric sequences.
//
// A run executes three stages:
//
//  1. Segment: split the sequence with the configured boundary policy
//  2. Compose: optionally re-split the chunks (recursive, hierarchical or
//     conditional composition)
//  3. Summarize: compute per-chunk statistics concurrently on the executor
//
// # Basic Usage
//
//	p, err := pipeline.New(config.Default(), pipeline.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//
//	res, err := p.Run(ctx, []float64{1.0, 1.1, 1.2, 5.0, 5.1, 5.2})
//	fmt.Printf("%d chunks in %v\n", res.Stats.Chunks, res.Stats.Duration)
//
// # Reductions
//
// Reduce segments a sequence and folds it with one of the built-in
// operators (sum, product, min, max), using the executor's per-chunk
// partial folds:
//
//	total, err := p.Reduce(ctx, seq, pipeline.OpSum)
//
// # Input
//
// ParseSequence reads numbers separated by whitespace or commas. Lines
// starting with '#' are comments.
package pipeline

// Package compose re-applies boundary policies to the chunks of a previous
// segmentation, producing nested chunk structures.
//
// Three composers are provided:
//   - Recursive applies one policy at every level up to a maximum depth
//   - Hierarchical applies a different policy per level; the level list
//     length bounds the depth
//   - Conditional applies a policy once, only to chunks accepted by a predicate
//
// All composers share a minimum chunk size: a chunk at or below it is a leaf
// and is never handed to a policy.
//
//	base, _ := policy.NewVariance[float64](1.0)
//	rec, _ := compose.NewRecursive[float64](base, 3, 2)
//	forest := rec.Compose(chunks) // one ChunkGroup of leaves per input chunk
//
// Tree returns the same result with depth bookkeeping; a node at depth d was
// produced by d policy applications. Every composer is itself a
// policy.Policy, so a Conditional can serve as the base of a Recursive or as
// one level of a Hierarchical.
package compose

package compose

import (
	"github.com/dshills/gochunk/internal/policy"
	"github.com/dshills/gochunk/pkg/types"
)

// Composer kinds
const (
	KindRecursive    policy.Kind = "recursive"
	KindHierarchical policy.Kind = "hierarchical"
	KindConditional  policy.Kind = "conditional"
)

// Composer builds nested chunk structures from a chunk list
type Composer[T any] interface {
	policy.Policy[T]

	// Compose returns one group of leaf chunks per input chunk, in input order
	Compose(chunks types.ChunkList[T]) types.ChunkForest[T]

	// Tree returns one root node per input chunk, in input order
	Tree(chunks types.ChunkList[T]) []*Node[T]
}

// Node is one chunk in a composition tree. Children are ordered and
// concatenate to Chunk; a node without children is a leaf.
type Node[T any] struct {
	Chunk    types.Chunk[T]
	Depth    int
	Children []*Node[T]
}

// IsLeaf reports whether the node was left unsplit
func (n *Node[T]) IsLeaf() bool {
	return len(n.Children) == 0
}

// Leaves returns the leaf chunks below n in order
func (n *Node[T]) Leaves() types.ChunkGroup[T] {
	if n.IsLeaf() {
		return types.ChunkGroup[T]{n.Chunk}
	}

	var leaves types.ChunkGroup[T]
	for _, c := range n.Children {
		leaves = append(leaves, c.Leaves()...)
	}
	return leaves
}

// MaxDepth returns the depth of the deepest node below n
func (n *Node[T]) MaxDepth() int {
	depth := n.Depth
	for _, c := range n.Children {
		if d := c.MaxDepth(); d > depth {
			depth = d
		}
	}
	return depth
}

// LevelSizes returns the chunk sizes found at each depth below n, which lets
// callers recover per-level grouping from a tree
func (n *Node[T]) LevelSizes() [][]int {
	levels := make([][]int, n.MaxDepth()-n.Depth+1)
	var walk func(*Node[T])
	walk = func(m *Node[T]) {
		i := m.Depth - n.Depth
		levels[i] = append(levels[i], len(m.Chunk))
		for _, c := range m.Children {
			walk(c)
		}
	}
	walk(n)
	return levels
}

// MaxDepth returns the deepest node depth across a forest of trees
func MaxDepth[T any](nodes []*Node[T]) int {
	depth := 0
	for _, n := range nodes {
		if d := n.MaxDepth(); d > depth {
			depth = d
		}
	}
	return depth
}

// Forest flattens trees into leaf groups
func Forest[T any](nodes []*Node[T]) types.ChunkForest[T] {
	forest := make(types.ChunkForest[T], len(nodes))
	for i, n := range nodes {
		forest[i] = n.Leaves()
	}
	return forest
}

// splitFunc returns the sub-chunks of c at depth, or false to keep c as a leaf
type splitFunc[T any] func(c types.Chunk[T], depth int) (types.ChunkList[T], bool)

// engine holds the pieces shared by every composer
type engine[T any] struct {
	minChunkSize int
	split        splitFunc[T]
}

func (e engine[T]) tree(chunks types.ChunkList[T]) []*Node[T] {
	nodes := make([]*Node[T], len(chunks))
	for i, c := range chunks {
		// roots own a copy so no two composition calls share storage
		nodes[i] = e.build(c.Clone(), 0)
	}
	return nodes
}

func (e engine[T]) build(c types.Chunk[T], depth int) *Node[T] {
	n := &Node[T]{Chunk: c, Depth: depth}
	if len(c) <= e.minChunkSize {
		return n
	}

	subs, ok := e.split(c, depth)
	if !ok || len(subs) <= 1 {
		return n
	}

	n.Children = make([]*Node[T], len(subs))
	for i, s := range subs {
		n.Children[i] = e.build(s, depth+1)
	}
	return n
}

func (e engine[T]) apply(seq []T) types.ChunkList[T] {
	if len(seq) == 0 {
		return make(types.ChunkList[T], 0)
	}
	root := e.build(types.Chunk[T](seq).Clone(), 0)
	return types.ChunkList[T](root.Leaves())
}

func checkMinChunkSize(minChunkSize int) error {
	if minChunkSize < 0 {
		return types.NewConfigError("min chunk size", minChunkSize, types.ErrInvalidSize)
	}
	return nil
}

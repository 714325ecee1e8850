// Package det provides read-only access to trained density estimation
// trees (DETs). A tree is loaded from a model file once and then serves
// point queries against immutable state; this package never trains,
// prunes, or otherwise modifies a tree.
package det

// Tree is one trained density estimation tree. All methods are pure
// reads and safe for concurrent use once the tree is loaded.
type Tree struct {
	// minVals and maxVals bound the region the tree was trained on,
	// one entry per input dimension.
	minVals []float64
	maxVals []float64

	// start and end delimit the half-open range of training points the
	// root node covers. end-start is the tree's support count.
	start int
	end   int

	root *node
}

// node is a single tree node. Leaves carry a density estimate; internal
// nodes carry a split on one dimension.
type node struct {
	splitDim int
	splitVal float64
	density  float64
	left     *node
	right    *node
}

func (n *node) leaf() bool { return n.left == nil && n.right == nil }

// MaxDimension returns the dimensionality of the tree's input domain.
func (t *Tree) MaxDimension() int {
	return len(t.maxVals)
}

// SupportCount returns the number of training points the tree covers.
func (t *Tree) SupportCount() int {
	return t.end - t.start
}

// ComputeValue returns the tree's density estimate at point. Points
// outside the tree's training bounds have zero density. The point must
// have at least MaxDimension components; extra components are ignored.
func (t *Tree) ComputeValue(point []float64) float64 {
	if t.root == nil {
		return 0
	}

	for d := range t.maxVals {
		if point[d] < t.minVals[d] || point[d] > t.maxVals[d] {
			return 0
		}
	}

	n := t.root
	for !n.leaf() {
		if point[n.splitDim] <= n.splitVal {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.density
}

// LeafCount returns the number of leaves in the tree.
func (t *Tree) LeafCount() int {
	return countLeaves(t.root)
}

func countLeaves(n *node) int {
	if n == nil {
		return 0
	}
	if n.leaf() {
		return 1
	}
	return countLeaves(n.left) + countLeaves(n.right)
}

// Close releases the tree's node storage. The tree evaluates to zero
// density afterwards. Close is idempotent.
func (t *Tree) Close() error {
	t.root = nil
	return nil
}

package dyntree

import (
	"fmt"
	"math"
	"strings"

	"github.com/Mathnerd314/supertux/internal/geom"
)

// GetAreaRatio returns the sum of all allocated nodes' perimeters divided by
// the root's perimeter, a diagnostic of packing quality. It is 0 for an
// empty tree.
func (t *Tree) GetAreaRatio() float64 {
	if t.root == NullNode {
		return 0.0
	}

	rootArea := t.nodes[t.root].aabb.Perimeter()

	totalArea := 0.0
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.isFree() {
			continue
		}
		totalArea += n.aabb.Perimeter()
	}

	return totalArea / rootArea
}

// ComputeHeight recomputes the height of the subtree rooted at nodeID in
// O(n) time. It is used to cross-check the incrementally maintained height
// field; normal operation never needs it.
func (t *Tree) ComputeHeight(nodeID int) int {
	assert(nodeID >= 0 && nodeID < len(t.nodes), "invalid node handle")

	n := &t.nodes[nodeID]
	if n.isLeaf() {
		return 0
	}
	return 1 + maxInt(t.ComputeHeight(n.child1), t.ComputeHeight(n.child2))
}

// GetMaxBalance returns, over every allocated internal node, the maximum
// absolute height difference between its two children.
func (t *Tree) GetMaxBalance() int {
	maxBalance := 0
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.height <= 1 {
			continue
		}
		balance := absInt(t.nodes[n.child2].height - t.nodes[n.child1].height)
		maxBalance = maxInt(maxBalance, balance)
	}
	return maxBalance
}

// RebuildBottomUp frees every internal node, collects every leaf, and
// greedily pairs the two leaves whose union has minimum perimeter,
// repeating until a single root remains. This is an O(n^2) operation,
// expensive, and not a globally optimal packing — it is provided for
// testing and offline compaction only.
func (t *Tree) RebuildBottomUp() {
	leaves := make([]int, 0, t.nodeCount)
	for i := range t.nodes {
		if t.nodes[i].isFree() {
			continue
		}
		if t.nodes[i].isLeaf() {
			t.nodes[i].parentOrNext = NullNode
			leaves = append(leaves, i)
		} else {
			t.freeNode(i)
		}
	}

	if len(leaves) == 0 {
		t.root = NullNode
		return
	}

	for len(leaves) > 1 {
		minCost := math.MaxFloat64
		iMin, jMin := -1, -1

		for i := 0; i < len(leaves); i++ {
			aabbI := t.nodes[leaves[i]].aabb
			for j := i + 1; j < len(leaves); j++ {
				aabbJ := t.nodes[leaves[j]].aabb
				cost := aabbI.Union(aabbJ).Perimeter()
				if cost < minCost {
					minCost = cost
					iMin, jMin = i, j
				}
			}
		}

		index1 := leaves[iMin]
		index2 := leaves[jMin]
		child1 := &t.nodes[index1]
		child2 := &t.nodes[index2]

		parentIndex := t.allocateNode()
		parent := &t.nodes[parentIndex]
		parent.child1 = index1
		parent.child2 = index2
		parent.height = 1 + maxInt(child1.height, child2.height)
		parent.aabb = child1.aabb.Union(child2.aabb)
		parent.parentOrNext = NullNode

		child1.parentOrNext = parentIndex
		child2.parentOrNext = parentIndex

		leaves[jMin] = leaves[len(leaves)-1]
		leaves[iMin] = parentIndex
		leaves = leaves[:len(leaves)-1]
	}

	t.root = leaves[0]
}

// ShiftOrigin translates every allocated node's AABB by -v. Used to recenter
// world coordinates without invalidating tree structure.
func (t *Tree) ShiftOrigin(v geom.Vec2) {
	for i := range t.nodes {
		if t.nodes[i].isFree() {
			continue
		}
		t.nodes[i].aabb = t.nodes[i].aabb.Shift(v)
	}
}

// Validate checks the tree's structural invariants (parent/child links,
// leaf shape), its metrics (heights and AABBs match the children), and pool
// accounting. It does not check the height-balance bound; GetMaxBalance
// reports that. It panics on the first violation found; callers only use it
// in tests and debug tooling.
func (t *Tree) Validate() {
	t.validateStructure(t.root)
	t.validateMetrics(t.root)

	freeCount := 0
	for i := t.freeList; i != NullNode; i = t.nodes[i].parentOrNext {
		freeCount++
	}
	assert(freeCount+t.nodeCount == len(t.nodes), "free list length + allocated count != capacity")

	for i := range t.nodes {
		if t.nodes[i].isFree() {
			continue
		}
		assert(t.nodes[i].height == t.ComputeHeight(i), "stored height diverges from computed height")
	}
}

func (t *Tree) validateStructure(index int) {
	if index == NullNode {
		return
	}

	if index == t.root {
		assert(t.nodes[index].parentOrNext == NullNode, "root has a parent")
	}

	n := &t.nodes[index]
	if n.isLeaf() {
		assert(n.child1 == NullNode && n.child2 == NullNode, "leaf has a child")
		assert(n.height == 0, "leaf height != 0")
		return
	}

	assert(t.nodes[n.child1].parentOrNext == index, "child1's parent link is wrong")
	assert(t.nodes[n.child2].parentOrNext == index, "child2's parent link is wrong")

	t.validateStructure(n.child1)
	t.validateStructure(n.child2)
}

func (t *Tree) validateMetrics(index int) {
	if index == NullNode {
		return
	}

	n := &t.nodes[index]
	if n.isLeaf() {
		return
	}

	h1 := t.nodes[n.child1].height
	h2 := t.nodes[n.child2].height
	assert(n.height == 1+maxInt(h1, h2), "stored height != 1+max(child heights)")

	union := t.nodes[n.child1].aabb.Union(t.nodes[n.child2].aabb)
	assert(union.LowerBound == n.aabb.LowerBound && union.UpperBound == n.aabb.UpperBound, "aabb != union of children")

	t.validateMetrics(n.child1)
	t.validateMetrics(n.child2)
}

// Dump renders a deterministic pre-order listing of the tree's nodes (aabb
// bounds and height), for golden-diff testing of structural operations such
// as RebuildBottomUp.
func (t *Tree) Dump() string {
	var b strings.Builder
	t.dumpNode(&b, t.root, 0)
	return b.String()
}

func (t *Tree) dumpNode(b *strings.Builder, index, depth int) {
	if index == NullNode {
		fmt.Fprintf(b, "%s<nil>\n", strings.Repeat("  ", depth))
		return
	}

	n := &t.nodes[index]
	kind := "internal"
	if n.isLeaf() {
		kind = "leaf"
	}
	fmt.Fprintf(b, "%s%s height=%d aabb=[(%.4f,%.4f) (%.4f,%.4f)]\n",
		strings.Repeat("  ", depth), kind, n.height,
		n.aabb.LowerBound.X, n.aabb.LowerBound.Y,
		n.aabb.UpperBound.X, n.aabb.UpperBound.Y)

	if !n.isLeaf() {
		t.dumpNode(b, n.child1, depth+1)
		t.dumpNode(b, n.child2, depth+1)
	}
}

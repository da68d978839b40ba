package dyntree

import "github.com/Mathnerd314/supertux/internal/geom"

// allocateNode pops a slot off the free list, growing the pool by doubling
// if it is empty, and resets the slot's topology fields for reuse as a leaf.
func (t *Tree) allocateNode() int {
	if t.freeList == NullNode {
		assert(t.nodeCount == len(t.nodes), "free list empty but pool not full")

		oldCapacity := len(t.nodes)
		newCapacity := oldCapacity * 2
		grown := make([]node, newCapacity)
		copy(grown, t.nodes)
		t.nodes = grown

		t.linkFreeList(oldCapacity, newCapacity)
		t.freeList = oldCapacity
	}

	id := t.freeList
	t.freeList = t.nodes[id].parentOrNext

	n := &t.nodes[id]
	n.parentOrNext = NullNode
	n.child1 = NullNode
	n.child2 = NullNode
	n.height = 0
	n.userData = nil
	n.moved = false

	t.nodeCount++
	return id
}

// freeNode returns an allocated slot to the pool.
func (t *Tree) freeNode(id int) {
	assert(id >= 0 && id < len(t.nodes), "invalid node handle")
	assert(t.nodeCount > 0, "pool underflow")

	t.nodes[id].parentOrNext = t.freeList
	t.nodes[id].height = -1
	t.freeList = id
	t.nodeCount--
}

// CreateProxy registers a leaf proxy for tightAABB, fattened by the
// configured AABBExtension, and returns its handle.
func (t *Tree) CreateProxy(tightAABB geom.Rect, userData interface{}) int {
	id := t.allocateNode()

	n := &t.nodes[id]
	n.aabb = tightAABB.Grow(t.cfg.AABBExtension)
	n.userData = userData
	n.height = 0
	n.moved = true

	t.insertLeaf(id)
	return id
}

// DestroyProxy removes and frees a leaf proxy. It is a programmer error to
// call this on a handle that is not a leaf.
func (t *Tree) DestroyProxy(proxyID int) {
	t.checkHandle(proxyID)
	assert(t.nodes[proxyID].isLeaf(), "DestroyProxy requires a leaf handle")

	t.removeLeaf(proxyID)
	t.freeNode(proxyID)
}

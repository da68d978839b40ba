// Package dyntree implements a dynamic AABB tree broad-phase index: a
// self-balancing binary tree over axis-aligned bounding rectangles used to
// accelerate region-overlap and ray-cast queries against a population of
// moving proxies. It is modeled, operation for operation, on Box2D's
// b2DynamicTree (by way of the Go port in the example pack's teacher repo and
// SuperTux's own fork of the C++ original).
package dyntree

import "github.com/Mathnerd314/supertux/internal/geom"

// Tree is a dynamic AABB tree. The zero value is not usable; construct one
// with NewTree or NewTreeWithConfig.
type Tree struct {
	cfg Config

	root int

	nodes       []node
	nodeCount   int
	freeList    int
	insertCount int // diagnostic only, never read
	path        int // reserved for incremental re-balance scheduling, unused
}

// NewTree constructs an empty tree with DefaultConfig tunables.
func NewTree() *Tree {
	return NewTreeWithConfig(DefaultConfig())
}

// NewTreeWithConfig constructs an empty tree with the given tunables.
func NewTreeWithConfig(cfg Config) *Tree {
	assert(cfg.InitialCapacity > 0, "initial capacity must be positive")
	assert(cfg.AABBExtension >= 0, "aabb extension must be non-negative")

	t := &Tree{
		cfg:  cfg,
		root: NullNode,
	}
	t.nodes = make([]node, cfg.InitialCapacity)
	t.linkFreeList(0, cfg.InitialCapacity)
	t.freeList = 0
	return t
}

// linkFreeList builds the free-list chain over nodes[from:to], terminating
// the last slot's next pointer with NullNode.
func (t *Tree) linkFreeList(from, to int) {
	for i := from; i < to-1; i++ {
		t.nodes[i].parentOrNext = i + 1
		t.nodes[i].height = -1
	}
	t.nodes[to-1].parentOrNext = NullNode
	t.nodes[to-1].height = -1
}

func (t *Tree) checkHandle(h int) {
	assert(h >= 0 && h < len(t.nodes), "invalid proxy handle")
	assert(!t.nodes[h].isFree(), "handle refers to a freed slot")
}

// GetUserData returns the opaque handle stored at proxy creation.
func (t *Tree) GetUserData(proxyID int) interface{} {
	t.checkHandle(proxyID)
	return t.nodes[proxyID].userData
}

// GetFatAABB returns the current fattened AABB for a proxy.
func (t *Tree) GetFatAABB(proxyID int) geom.Rect {
	t.checkHandle(proxyID)
	return t.nodes[proxyID].aabb
}

// WasMoved reports whether the proxy was (re)inserted since the last
// ClearMoved call.
func (t *Tree) WasMoved(proxyID int) bool {
	t.checkHandle(proxyID)
	return t.nodes[proxyID].moved
}

// ClearMoved clears the proxy's moved flag.
func (t *Tree) ClearMoved(proxyID int) {
	t.checkHandle(proxyID)
	t.nodes[proxyID].moved = false
}

// GetHeight returns the tree's height: the height of the root node, or 0 for
// an empty tree.
func (t *Tree) GetHeight() int {
	if t.root == NullNode {
		return 0
	}
	return t.nodes[t.root].height
}

package dyntree

import "github.com/Mathnerd314/supertux/internal/geom"

// MoveProxy updates a leaf's tight AABB, avoiding a remove/insert cycle under
// small motion via hysteresis against the stored fat AABB. displacement is
// the predicted motion for this step, used to extend the fat AABB one-sided
// in the direction of travel so fast-moving objects don't immediately fall
// outside it again. It returns true iff the proxy was actually reinserted.
func (t *Tree) MoveProxy(proxyID int, tightAABB geom.Rect, displacement geom.Vec2) bool {
	t.checkHandle(proxyID)
	assert(t.nodes[proxyID].isLeaf(), "MoveProxy requires a leaf handle")

	fat := tightAABB.Grow(t.cfg.AABBExtension)

	d := displacement.Scale(t.cfg.AABBMultiplier)
	if d.X < 0.0 {
		fat.LowerBound.X += d.X
	} else {
		fat.UpperBound.X += d.X
	}
	if d.Y < 0.0 {
		fat.LowerBound.Y += d.Y
	} else {
		fat.UpperBound.Y += d.Y
	}

	treeAABB := t.nodes[proxyID].aabb
	if treeAABB.Contains(tightAABB) {
		// The tree AABB still contains the object, but it might be too
		// large — the object may have been moving fast and since slowed or
		// stopped. Keep it only while the new fat AABB, grown by a further
		// 4x the extension, still contains it.
		huge := fat.Grow(4.0 * t.cfg.AABBExtension)
		if huge.Contains(treeAABB) {
			return false
		}
		// Otherwise fall through: the stored AABB has grown excessively
		// large and must shrink.
	}

	t.removeLeaf(proxyID)
	t.nodes[proxyID].aabb = fat
	t.insertLeaf(proxyID)
	t.nodes[proxyID].moved = true

	return true
}

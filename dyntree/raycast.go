package dyntree

import "github.com/Mathnerd314/supertux/internal/geom"

// RayCastInput describes a ray segment from P1 to P1 + MaxFraction*(P2-P1).
type RayCastInput struct {
	P1, P2      geom.Vec2
	MaxFraction float64
}

// RayCastCallback is invoked for each leaf whose AABB the ray may hit. It
// returns a narrowing fraction:
//   - 0: terminate the ray cast immediately.
//   - negative: ignore this leaf, keep walking.
//   - positive: narrow the ray to max_fraction = value for all subsequent
//     tests in this same RayCast call.
type RayCastCallback func(input RayCastInput, proxyID int) float64

// RayCast walks the tree invoking callback for each leaf whose AABB passes
// both the segment bounding-box test and the separating-axis test against
// the (possibly narrowing) ray.
func (t *Tree) RayCast(input RayCastInput, callback RayCastCallback) {
	p1 := input.P1
	p2 := input.P2

	diff := p2.Sub(p1)
	assert(diff.LengthSquared() > 0.0, "degenerate ray: p1 == p2")
	r, _ := diff.Normalize()

	v := r.Perp()
	absV := v.Abs()

	maxFraction := input.MaxFraction

	segmentEnd := p1.Add(p2.Sub(p1).Scale(maxFraction))
	segmentAABB := geom.RectFromPoints(p1, segmentEnd)

	var stack handleStack
	stack.push(t.root)

	for !stack.empty() {
		id := stack.pop()
		if id == NullNode {
			continue
		}

		n := &t.nodes[id]
		if !n.aabb.Overlaps(segmentAABB) {
			continue
		}

		c := n.aabb.Center()
		h := n.aabb.Extents()

		separation := absFloat(v.Dot(p1.Sub(c))) - absV.Dot(h)
		if separation > 0.0 {
			continue
		}

		if n.isLeaf() {
			subInput := RayCastInput{P1: p1, P2: p2, MaxFraction: maxFraction}
			value := callback(subInput, id)

			if value == 0.0 {
				return
			}
			if value > 0.0 {
				maxFraction = value
				segmentEnd = p1.Add(p2.Sub(p1).Scale(maxFraction))
				segmentAABB = geom.RectFromPoints(p1, segmentEnd)
			}
		} else {
			stack.push(n.child1)
			stack.push(n.child2)
		}
	}
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

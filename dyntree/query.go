package dyntree

import "github.com/Mathnerd314/supertux/internal/geom"

// QueryCallback is invoked for each leaf whose fat AABB overlaps the query
// rectangle. Returning false terminates the walk immediately; no further
// leaves are reported.
type QueryCallback func(proxyID int) (keepGoing bool)

// Query walks the tree reporting every leaf whose fat AABB overlaps aabb.
// Traversal order is unspecified.
func (t *Tree) Query(aabb geom.Rect, callback QueryCallback) {
	var stack handleStack
	stack.push(t.root)

	for !stack.empty() {
		id := stack.pop()
		if id == NullNode {
			continue
		}

		n := &t.nodes[id]
		if !n.aabb.Overlaps(aabb) {
			continue
		}

		if n.isLeaf() {
			if !callback(id) {
				return
			}
		} else {
			stack.push(n.child1)
			stack.push(n.child2)
		}
	}
}

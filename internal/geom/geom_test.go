package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mathnerd314/supertux/internal/geom"
)

func TestRectUnionContainsBoth(t *testing.T) {
	a := geom.NewRect(geom.NewVec2(0, 0), geom.NewVec2(1, 1))
	b := geom.NewRect(geom.NewVec2(5, 5), geom.NewVec2(6, 6))

	u := a.Union(b)
	assert.True(t, u.Contains(a))
	assert.True(t, u.Contains(b))
}

func TestRectOverlapsTouchingEdges(t *testing.T) {
	a := geom.NewRect(geom.NewVec2(0, 0), geom.NewVec2(1, 1))
	b := geom.NewRect(geom.NewVec2(1, 0), geom.NewVec2(2, 1))
	assert.True(t, a.Overlaps(b))
}

func TestRectOverlapsSeparated(t *testing.T) {
	a := geom.NewRect(geom.NewVec2(0, 0), geom.NewVec2(1, 1))
	b := geom.NewRect(geom.NewVec2(2, 0), geom.NewVec2(3, 1))
	assert.False(t, a.Overlaps(b))
}

func TestRectGrowExpandsBothSides(t *testing.T) {
	r := geom.NewRect(geom.NewVec2(1, 1), geom.NewVec2(2, 2))
	grown := r.Grow(0.5)
	assert.Equal(t, geom.NewVec2(0.5, 0.5), grown.LowerBound)
	assert.Equal(t, geom.NewVec2(2.5, 2.5), grown.UpperBound)
}

func TestRectShiftIsInverseOfNegativeShift(t *testing.T) {
	r := geom.NewRect(geom.NewVec2(1, 2), geom.NewVec2(3, 4))
	v := geom.NewVec2(10, -5)
	assert.Equal(t, r, r.Shift(v).Shift(v.Scale(-1)))
}

func TestVec2NormalizeZeroVector(t *testing.T) {
	n, length := geom.NewVec2(0, 0).Normalize()
	assert.Equal(t, geom.Vec2{}, n)
	assert.Equal(t, 0.0, length)
}

func TestVec2NormalizeUnitLength(t *testing.T) {
	n, length := geom.NewVec2(3, 4).Normalize()
	assert.InDelta(t, 5.0, length, 1e-9)
	assert.InDelta(t, 1.0, n.Length(), 1e-9)
}

func TestVec2PerpIsOrthogonal(t *testing.T) {
	v := geom.NewVec2(3, 4)
	p := v.Perp()
	assert.InDelta(t, 0.0, v.Dot(p), 1e-9)
}

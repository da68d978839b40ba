package geom

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	LowerBound Vec2
	UpperBound Vec2
}

func NewRect(lower, upper Vec2) Rect {
	return Rect{LowerBound: lower, UpperBound: upper}
}

func (r Rect) Center() Vec2 {
	return r.LowerBound.Add(r.UpperBound).Scale(0.5)
}

// Extents returns the rectangle's half-widths.
func (r Rect) Extents() Vec2 {
	return r.UpperBound.Sub(r.LowerBound).Scale(0.5)
}

func (r Rect) Perimeter() float64 {
	w := r.UpperBound.X - r.LowerBound.X
	h := r.UpperBound.Y - r.LowerBound.Y
	return 2.0 * (w + h)
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		LowerBound: Min(r.LowerBound, o.LowerBound),
		UpperBound: Max(r.UpperBound, o.UpperBound),
	}
}

// Contains reports whether r fully contains o.
func (r Rect) Contains(o Rect) bool {
	return r.LowerBound.X <= o.LowerBound.X &&
		r.LowerBound.Y <= o.LowerBound.Y &&
		o.UpperBound.X <= r.UpperBound.X &&
		o.UpperBound.Y <= r.UpperBound.Y
}

// Overlaps reports whether r and o share any area (touching edges count).
func (r Rect) Overlaps(o Rect) bool {
	d1 := o.LowerBound.Sub(r.UpperBound)
	d2 := r.LowerBound.Sub(o.UpperBound)

	if d1.X > 0.0 || d1.Y > 0.0 {
		return false
	}
	if d2.X > 0.0 || d2.Y > 0.0 {
		return false
	}
	return true
}

// Grow returns r expanded by margin on every side.
func (r Rect) Grow(margin float64) Rect {
	m := Vec2{margin, margin}
	return Rect{
		LowerBound: r.LowerBound.Sub(m),
		UpperBound: r.UpperBound.Add(m),
	}
}

// Shift translates r by -v, matching dyntree's origin-shift convention.
func (r Rect) Shift(v Vec2) Rect {
	return Rect{
		LowerBound: r.LowerBound.Sub(v),
		UpperBound: r.UpperBound.Sub(v),
	}
}

// RectFromPoint returns the degenerate rectangle containing only p.
func RectFromPoint(p Vec2) Rect {
	return Rect{LowerBound: p, UpperBound: p}
}

// RectFromPoints returns the smallest rectangle containing both points.
func RectFromPoints(a, b Vec2) Rect {
	return Rect{LowerBound: Min(a, b), UpperBound: Max(a, b)}
}

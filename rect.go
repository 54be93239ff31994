package mindlayout

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Rect is an axis-aligned, half-open rectangle: inclusive on the lower
// bound, exclusive on the upper. The coordinate system has its origin at
// the top-left, with Y increasing downward. All components are finite
// float64s.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the rectangle's exclusive right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the rectangle's exclusive bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the half-open
// rectangle: the lower bound is inclusive, the upper bound exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() &&
		y >= r.Y && y < r.Bottom()
}

// ContainsRect reports whether other is entirely contained within r: a
// non-collapsed internal node's bounding rectangle must contain every
// descendant's node rectangle.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Intersects reports whether r and other overlap under the half-open
// convention. Rectangles that only share an edge (touching, not
// overlapping) are NOT considered intersecting — this is the AABB test
// used by the overlap resolver to decide whether two
// sibling sub-trees need separating.
func (r Rect) Intersects(other Rect) bool {
	if r.Width <= 0 || r.Height <= 0 || other.Width <= 0 || other.Height <= 0 {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Union returns the smallest rectangle containing both r and other. If
// either has zero size it still contributes its corners (a zero-size rect
// at a point still has a position that must be covered). Only two
// rectangles are involved, so the four edge comparisons use math.Min/Max
// directly rather than a slice-reduction library.
func (r Rect) Union(other Rect) Rect {
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.Right(), other.Right())
	maxY := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// unionAll returns the union of a non-empty slice of rectangles, reducing
// each edge across the whole slice with gonum/floats rather than folding
// pairwise. Panics if rs is empty — callers must check length first (a
// union of zero rectangles has no sensible definition in this engine,
// unlike Go's implicit zero values for numeric reductions).
func unionAll(rs []Rect) Rect {
	xs := make([]float64, len(rs))
	ys := make([]float64, len(rs))
	rights := make([]float64, len(rs))
	bottoms := make([]float64, len(rs))
	for i, r := range rs {
		xs[i] = r.X
		ys[i] = r.Y
		rights[i] = r.Right()
		bottoms[i] = r.Bottom()
	}
	minX, maxX := floats.Min(xs), floats.Max(rights)
	minY, maxY := floats.Min(ys), floats.Max(bottoms)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Inflate grows the rectangle by dx horizontally and dy vertically on each
// side (so total width grows by 2*dx, total height by 2*dy). Negative
// values shrink it. Used to apply layout spacing around a node's raw
// geometric rect.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{
		X:      r.X - dx,
		Y:      r.Y - dy,
		Width:  r.Width + 2*dx,
		Height: r.Height + 2*dy,
	}
}

// translate shifts the rectangle by (dx, dy).
func (r Rect) translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

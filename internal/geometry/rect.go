package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// DefaultPadding is the expansion applied when a radius of exactly 0 is
// requested. Callers that want no padding at all should not expand.
const DefaultPadding = 4.0

// Rect is an immutable axis-aligned bounding box. The constructor normalizes
// corner order, so MinX <= MaxX and MinY <= MaxY always hold.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewRect builds a Rect from two corner coordinates in any order.
func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

// RectFromBound converts an orb.Bound to a Rect.
func RectFromBound(b orb.Bound) Rect {
	return NewRect(b.Min[0], b.Min[1], b.Max[0], b.Max[1])
}

// Bound converts the Rect to an orb.Bound.
func (r Rect) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.MinX, r.MinY},
		Max: orb.Point{r.MaxX, r.MaxY},
	}
}

// Envelope returns the rectangle as [min_x, min_y, max_x, max_y].
func (r Rect) Envelope() [4]float64 {
	return [4]float64{r.MinX, r.MinY, r.MaxX, r.MaxY}
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Contains reports whether the point lies inside the rectangle. Bounds are
// closed, a point on the edge is inside.
func (r Rect) Contains(p orb.Point) bool {
	return p[0] >= r.MinX && p[0] <= r.MaxX && p[1] >= r.MinY && p[1] <= r.MaxY
}

// Intersects reports whether the two rectangles overlap. Bounds are closed,
// so rectangles sharing only an edge or corner still intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX && r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

// Union returns the tightest rectangle enclosing both inputs.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Expand pads the rectangle symmetrically in all four directions. A radius of
// exactly 0 means "use the default padding", not "no padding".
func (r Rect) Expand(radius float64) Rect {
	if radius == 0 {
		radius = DefaultPadding
	}
	return Rect{
		MinX: r.MinX - radius,
		MinY: r.MinY - radius,
		MaxX: r.MaxX + radius,
		MaxY: r.MaxY + radius,
	}
}

// OverallExtent folds a slice of rectangles into the bounding box that
// encloses all of them. The second return value is false for an empty slice.
func OverallExtent(rects []Rect) (Rect, bool) {
	if len(rects) == 0 {
		return Rect{}, false
	}
	extent := rects[0]
	for _, r := range rects[1:] {
		extent = extent.Union(r)
	}
	return extent, true
}

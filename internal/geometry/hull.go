package geometry

import (
	"sort"

	"github.com/paulmach/orb"
)

// ConvexHull computes the convex hull of a point set using Andrew's monotone
// chain algorithm and returns it as a closed ring (first vertex repeated at
// the end). Duplicate input points are harmless. Fewer than 3 distinct
// points yield a degenerate ring, callers are expected to fall back to a
// bounding box before that.
func ConvexHull(points []orb.Point) orb.Ring {
	if len(points) == 0 {
		return nil
	}

	sorted := make([]orb.Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i][0] != sorted[j][0] {
			return sorted[i][0] < sorted[j][0]
		}
		return sorted[i][1] < sorted[j][1]
	})

	n := len(sorted)
	hull := make([]orb.Point, 0, 2*n)

	// Lower hull.
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// Upper hull.
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// The chain ends back at the start point, which closes the ring.
	return orb.Ring(hull)
}

// cross returns the cross product of vectors OA and OB.
func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

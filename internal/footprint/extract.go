// Package footprint derives per-feature geometric footprints from a GeoJSON
// feature collection: convex hulls where a feature contributes at least 3
// distinct coordinates, bounding-box polygons otherwise. Features that fall
// outside the region of interest, carry no geometry, or use an unsupported
// geometry type are skipped silently; bulk collections routinely contain a
// few unusable records and one bad feature must not fail the batch.
package footprint

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geocluster/internal/geometry"
)

// Extractor filters and flattens features against a region of interest.
type Extractor struct {
	Region geometry.Rect
}

// NewExtractor creates an extractor for the given region of interest.
func NewExtractor(region geometry.Rect) *Extractor {
	return &Extractor{Region: region}
}

// CollectHulls runs the hull pipeline: one footprint polygon per usable
// feature, with geometrically identical footprints removed. Order follows
// the input collection.
func (e *Extractor) CollectHulls(fc *geojson.FeatureCollection) []orb.Polygon {
	if fc == nil {
		return nil
	}
	var hulls []orb.Polygon
	for _, f := range fc.Features {
		if poly, ok := e.footprint(f); ok {
			hulls = append(hulls, poly)
		}
	}
	return Dedupe(hulls)
}

// CollectRects runs the rectangle pipeline: each footprint is reduced to its
// bounding rectangle and expanded by radius (0 means the default padding).
// Rectangles are not deduplicated, the clustering stage merges overlaps.
func (e *Extractor) CollectRects(fc *geojson.FeatureCollection, radius float64) []geometry.Rect {
	if fc == nil {
		return nil
	}
	var rects []geometry.Rect
	for _, f := range fc.Features {
		if poly, ok := e.footprint(f); ok {
			rects = append(rects, geometry.RectFromBound(poly.Bound()).Expand(radius))
		}
	}
	return rects
}

// footprint produces zero or one polygon for a feature.
func (e *Extractor) footprint(f *geojson.Feature) (orb.Polygon, bool) {
	if f == nil || f.Geometry == nil {
		return nil, false
	}

	// Early reject on the feature-level bbox before touching any geometry.
	if len(f.BBox) >= 4 {
		bb := geometry.NewRect(f.BBox[0], f.BBox[1], f.BBox[2], f.BBox[3])
		if !bb.Intersects(e.Region) {
			return nil, false
		}
	}

	coords, ok := e.extractCoords(f.Geometry)
	if !ok || len(coords) == 0 {
		return nil, false
	}

	if countUnique(coords) >= 3 {
		// Hull over all extracted points, not just the unique ones.
		return orb.Polygon{geometry.ConvexHull(coords)}, true
	}

	// A single point or degenerate line: fall back to the bounding box.
	return orb.MultiPoint(coords).Bound().ToPolygon(), true
}

// extractCoords flattens a geometry's vertices. Containment is
// all-or-nothing: one coordinate outside the region rejects the whole
// feature. Polygon interior rings are ignored, they cannot affect a hull or
// a bounding box. Unsupported geometry types report !ok.
func (e *Extractor) extractCoords(g orb.Geometry) ([]orb.Point, bool) {
	var coords []orb.Point
	add := func(pts ...orb.Point) bool {
		for _, p := range pts {
			if !e.Region.Contains(p) {
				return false
			}
		}
		coords = append(coords, pts...)
		return true
	}

	switch geom := g.(type) {
	case orb.Point:
		if !add(geom) {
			return nil, false
		}
	case orb.LineString:
		if !add(geom...) {
			return nil, false
		}
	case orb.Polygon:
		if len(geom) == 0 {
			return nil, false
		}
		if !add(geom[0]...) {
			return nil, false
		}
	case orb.MultiPoint:
		if !add(geom...) {
			return nil, false
		}
	case orb.MultiLineString:
		for _, ls := range geom {
			if !add(ls...) {
				return nil, false
			}
		}
	case orb.MultiPolygon:
		for _, poly := range geom {
			if len(poly) == 0 {
				continue
			}
			if !add(poly[0]...) {
				return nil, false
			}
		}
	default:
		return nil, false
	}

	return coords, true
}

// countUnique counts distinct coordinates under exact float comparison.
func countUnique(coords []orb.Point) int {
	seen := make(map[orb.Point]struct{}, len(coords))
	for _, p := range coords {
		seen[p] = struct{}{}
	}
	return len(seen)
}

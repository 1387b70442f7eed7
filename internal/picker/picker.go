// Package picker filters feature collections by bounding-box containment.
package picker

import (
	"github.com/paulmach/orb/geojson"

	"geocluster/internal/geometry"
)

// ByBound keeps the features whose geometry lies entirely inside the query
// rectangle. Containment is judged on the geometry's bound, and features
// without geometry are dropped.
func ByBound(fc *geojson.FeatureCollection, region geometry.Rect) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	if fc == nil {
		return out
	}
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		b := f.Geometry.Bound()
		if region.Contains(b.Min) && region.Contains(b.Max) {
			out.Append(f)
		}
	}
	return out
}

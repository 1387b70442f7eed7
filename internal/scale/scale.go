// Package scale resizes polygonal features around their area centroid.
package scale

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Polygon scales every ring of the polygon by factor around the polygon's
// area centroid. Factor 1 is the identity.
func Polygon(poly orb.Polygon, factor float64) orb.Polygon {
	centroid, _ := planar.CentroidArea(poly)
	out := make(orb.Polygon, len(poly))
	for i, ring := range poly {
		scaledRing := make(orb.Ring, len(ring))
		for j, p := range ring {
			scaledRing[j] = orb.Point{
				centroid[0] + (p[0]-centroid[0])*factor,
				centroid[1] + (p[1]-centroid[1])*factor,
			}
		}
		out[i] = scaledRing
	}
	return out
}

// FeatureCollection scales all Polygon and MultiPolygon features by factor.
// Other geometry types pass through unchanged, a point has no extent to
// scale.
func FeatureCollection(fc *geojson.FeatureCollection, factor float64) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	if fc == nil {
		return out
	}
	for _, f := range fc.Features {
		switch geom := f.Geometry.(type) {
		case orb.Polygon:
			scaled := geojson.NewFeature(Polygon(geom, factor))
			scaled.ID = f.ID
			scaled.Properties = f.Properties
			out.Append(scaled)
		case orb.MultiPolygon:
			mp := make(orb.MultiPolygon, len(geom))
			for i, poly := range geom {
				mp[i] = Polygon(poly, factor)
			}
			scaled := geojson.NewFeature(mp)
			scaled.ID = f.ID
			scaled.Properties = f.Properties
			out.Append(scaled)
		default:
			out.Append(f)
		}
	}
	return out
}

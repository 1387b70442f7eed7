// Package concat merges LineString features whose endpoints lie within a
// caller-supplied gap distance, chaining segments end to end. Candidate
// endpoints come out of an R-tree; the actual gap check is geodesic.
package concat

import (
	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geocluster/internal/util"
)

// metersPerDegree approximates one degree of latitude. It only sizes the
// candidate search box; confirmation uses the haversine distance.
const metersPerDegree = 111320.0

// endpoint marks the head or tail of an input LineString in the R-tree.
type endpoint struct {
	point   orb.Point
	feature int
	atStart bool
}

func (e *endpoint) Bounds() rtreego.Rect {
	return rtreego.Point{e.point[0], e.point[1]}.ToRect(1e-9)
}

// MergeLineStrings joins LineString features whose endpoints are closer
// than maxGapMeters. Chains grow greedily from both ends, reversing
// segments as needed. Merged features get a fresh UUID and inherit the
// properties of the chain's first segment. Non-LineString and degenerate
// features pass through untouched.
func MergeLineStrings(fc *geojson.FeatureCollection, maxGapMeters float64) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	if fc == nil || len(fc.Features) == 0 {
		return out
	}

	var lines []*geojson.Feature
	for _, f := range fc.Features {
		if ls, ok := f.Geometry.(orb.LineString); ok && len(ls) >= 2 {
			lines = append(lines, f)
		} else {
			out.Append(f)
		}
	}

	tree := rtreego.NewTree(2, 25, 50)
	for i, f := range lines {
		ls := f.Geometry.(orb.LineString)
		tree.Insert(&endpoint{point: ls[0], feature: i, atStart: true})
		tree.Insert(&endpoint{point: ls[len(ls)-1], feature: i, atStart: false})
	}

	searchTol := maxGapMeters / metersPerDegree
	if searchTol <= 0 {
		// rtreego rejects zero-extent query boxes.
		searchTol = 1e-9
	}
	merged := make([]bool, len(lines))

	for i := range lines {
		if merged[i] {
			continue
		}
		merged[i] = true
		chain := append(orb.LineString(nil), lines[i].Geometry.(orb.LineString)...)
		joined := false

		// Grow at the tail.
		for {
			hit, ok := nearestOpenEndpoint(tree, merged, chain[len(chain)-1], searchTol, maxGapMeters)
			if !ok {
				break
			}
			seg := lines[hit.feature].Geometry.(orb.LineString)
			if !hit.atStart {
				seg = reversed(seg)
			}
			if seg[0] == chain[len(chain)-1] {
				seg = seg[1:]
			}
			chain = append(chain, seg...)
			merged[hit.feature] = true
			joined = true
		}

		// Grow at the head.
		for {
			hit, ok := nearestOpenEndpoint(tree, merged, chain[0], searchTol, maxGapMeters)
			if !ok {
				break
			}
			seg := lines[hit.feature].Geometry.(orb.LineString)
			if hit.atStart {
				seg = reversed(seg)
			}
			if seg[len(seg)-1] == chain[0] {
				seg = seg[:len(seg)-1]
			}
			chain = append(append(orb.LineString(nil), seg...), chain...)
			merged[hit.feature] = true
			joined = true
		}

		f := geojson.NewFeature(chain)
		f.Properties = lines[i].Properties
		if joined {
			f.ID = uuid.NewString()
		} else {
			f.ID = lines[i].ID
		}
		out.Append(f)
	}

	return out
}

// nearestOpenEndpoint finds the closest endpoint of a not-yet-merged line
// within the gap distance of p.
func nearestOpenEndpoint(tree *rtreego.Rtree, merged []bool, p orb.Point, searchTol, maxGapMeters float64) (*endpoint, bool) {
	var best *endpoint
	bestDist := maxGapMeters
	for _, match := range tree.SearchIntersect(rtreego.Point{p[0], p[1]}.ToRect(searchTol)) {
		ep := match.(*endpoint)
		if merged[ep.feature] {
			continue
		}
		d := util.HaversineDistance(p[1], p[0], ep.point[1], ep.point[0])
		if d <= bestDist {
			best = ep
			bestDist = d
		}
	}
	return best, best != nil
}

func reversed(ls orb.LineString) orb.LineString {
	out := make(orb.LineString, len(ls))
	for i, p := range ls {
		out[len(ls)-1-i] = p
	}
	return out
}

package footprint

import (
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// canonicalKey renders the sorted, duplicate-free vertices of a polygon's
// exterior ring into a string usable as a map key. FormatFloat with the 'b'
// verb is lossless, so two footprints share a key iff their vertex sets are
// bit-identical.
func canonicalKey(poly orb.Polygon) string {
	if len(poly) == 0 {
		return ""
	}

	seen := make(map[orb.Point]struct{}, len(poly[0]))
	pts := make([]orb.Point, 0, len(poly[0]))
	for _, p := range poly[0] {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pts = append(pts, p)
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})

	var sb strings.Builder
	for _, p := range pts {
		sb.WriteString(strconv.FormatFloat(p[0], 'b', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(p[1], 'b', -1, 64))
		sb.WriteByte(';')
	}
	return sb.String()
}

// Dedupe removes geometrically identical polygons, keeping the first
// occurrence of each and preserving input order.
func Dedupe(polys []orb.Polygon) []orb.Polygon {
	if len(polys) == 0 {
		return polys
	}
	unique := make([]orb.Polygon, 0, len(polys))
	seen := make(map[string]struct{}, len(polys))
	for _, poly := range polys {
		key := canonicalKey(poly)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, poly)
	}
	return unique
}

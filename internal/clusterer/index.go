// Package clusterer groups rectangles into connected components by envelope
// overlap and folds each component into one enclosing rectangle. Overlap
// discovery goes through a bulk-loaded R-tree; component tracking uses a
// weighted union-find forest.
package clusterer

import (
	"github.com/dhconnelly/rtreego"

	"geocluster/internal/geometry"
)

// envelopePad inflates every envelope by a hair. rtreego rejects
// non-positive extents, and the pad also guarantees that rectangles sharing
// only an edge or corner register as intersecting.
const envelopePad = 1e-9

// entry ties an indexed rectangle back to its position in the source slice,
// so query hits can be mapped onto the union-find forest. The index stores
// copies, the caller's slice stays the source of truth.
type entry struct {
	rect geometry.Rect
	id   int
}

// Bounds implements rtreego.Spatial.
func (e *entry) Bounds() rtreego.Rect {
	r, _ := rtreego.NewRect(
		rtreego.Point{e.rect.MinX - envelopePad, e.rect.MinY - envelopePad},
		[]float64{e.rect.Width() + 2*envelopePad, e.rect.Height() + 2*envelopePad},
	)
	return r
}

// searchBounds builds the query envelope for a rectangle.
func searchBounds(r geometry.Rect) rtreego.Rect {
	return (&entry{rect: r}).Bounds()
}

// IndexRects bulk-loads all rectangle envelopes into a 2D R-tree in one
// pass. Bulk loading yields a better-balanced tree than repeated inserts at
// the collection sizes this pipeline sees.
func IndexRects(rects []geometry.Rect) *rtreego.Rtree {
	entries := make([]rtreego.Spatial, len(rects))
	for i, r := range rects {
		entries[i] = &entry{rect: r, id: i}
	}
	return rtreego.NewTree(2, 25, 50, entries...)
}

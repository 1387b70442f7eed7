package clusterer

import (
	"math"

	"github.com/theodesp/unionfind"

	"geocluster/internal/geometry"
)

// GroupOverlapping builds a disjoint-set forest over the rectangle slice in
// which two indices share a root iff their rectangles are connected through
// a chain of pairwise envelope overlaps. Overlap means envelope
// intersection, touching edges and corners count.
func GroupOverlapping(rects []geometry.Rect) *unionfind.UnionFind {
	tree := IndexRects(rects)
	uf := unionfind.New(len(rects))
	for i, r := range rects {
		for _, match := range tree.SearchIntersect(searchBounds(r)) {
			// Every rectangle intersects its own envelope; skip the
			// self-match instead of feeding it to the forest.
			if j := match.(*entry).id; j != i {
				uf.Union(i, j)
			}
		}
	}
	return uf
}

// MergeComponents partitions the rectangles by their component root and
// folds each group into the tightest enclosing rectangle. Output order
// follows map iteration and must not be relied upon.
func MergeComponents(rects []geometry.Rect, uf *unionfind.UnionFind) []geometry.Rect {
	components := make(map[int][]geometry.Rect, len(rects))
	for i, r := range rects {
		root := uf.Root(i)
		if root < 0 {
			root = i
		}
		components[root] = append(components[root], r)
	}

	merged := make([]geometry.Rect, 0, len(components))
	for _, group := range components {
		box := group[0]
		for _, r := range group[1:] {
			box = box.Union(r)
		}
		merged = append(merged, box)
	}
	return merged
}

// Cluster runs the sequential pipeline: index, group by overlap, merge each
// component. A singleton component yields its member unchanged.
func Cluster(rects []geometry.Rect) []geometry.Rect {
	if len(rects) == 0 {
		return nil
	}
	return MergeComponents(rects, GroupOverlapping(rects))
}

// CoverGrid lays a square grid over the overall extent of the merged
// rectangles and keeps the cells that intersect at least one of them. Cell
// size is chosen so the extent holds roughly targetCells cells.
func CoverGrid(merged []geometry.Rect, targetCells float64) []geometry.Rect {
	extent, ok := geometry.OverallExtent(merged)
	if !ok || targetCells <= 0 {
		return nil
	}
	area := extent.Width() * extent.Height()
	if area <= 0 {
		return nil
	}
	cellSize := math.Sqrt(area / targetCells)

	tree := IndexRects(merged)
	var cells []geometry.Rect
	for _, cell := range geometry.SquareGrid(extent, cellSize, cellSize) {
		if len(tree.SearchIntersect(searchBounds(cell))) > 0 {
			cells = append(cells, cell)
		}
	}
	return cells
}

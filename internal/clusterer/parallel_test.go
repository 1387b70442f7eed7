package clusterer

import (
	"math/rand"
	"testing"

	"geocluster/internal/geometry"
)

func randomRects(n int, seed int64) []geometry.Rect {
	rng := rand.New(rand.NewSource(seed))
	rects := make([]geometry.Rect, n)
	for i := range rects {
		x := rng.Float64() * 100
		y := rng.Float64() * 100
		rects[i] = geometry.NewRect(x, y, x+rng.Float64()*5, y+rng.Float64()*5)
	}
	return rects
}

func TestOverlapPairsOrdering(t *testing.T) {
	rects := randomRects(300, 1)

	seen := make(map[Pair]bool)
	for _, p := range OverlapPairs(rects, 4, 32) {
		if p.I >= p.J {
			t.Fatalf("Expected I < J, got pair %+v", p)
		}
		if seen[p] {
			t.Fatalf("Duplicate pair %+v", p)
		}
		seen[p] = true
		if !rects[p.I].Intersects(rects[p.J]) {
			t.Errorf("Pair %+v reported but rectangles do not intersect", p)
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	for _, n := range []int{0, 1, 10, 500} {
		rects := randomRects(n, int64(n))

		seq := Cluster(rects)
		par := ClusterParallel(rects, 4, 64)
		sortRects(seq)
		sortRects(par)

		if len(seq) != len(par) {
			t.Fatalf("n=%d: sequential produced %d rects, parallel %d", n, len(seq), len(par))
		}
		for i := range seq {
			if seq[i] != par[i] {
				t.Errorf("n=%d: rect %d differs, sequential %v parallel %v", n, i, seq[i], par[i])
			}
		}
	}
}

func TestParallelDefaults(t *testing.T) {
	rects := randomRects(50, 7)

	// workers and chunkSize <= 0 fall back to defaults.
	merged := ClusterParallel(rects, 0, 0)
	seq := Cluster(rects)

	if len(merged) != len(seq) {
		t.Errorf("Expected %d rects with default settings, got %d", len(seq), len(merged))
	}
}

func TestParallelChunkSmallerThanInput(t *testing.T) {
	rects := randomRects(100, 3)

	// Chunk size of 1 exercises the chunk boundary handling.
	seq := Cluster(rects)
	par := ClusterParallel(rects, 8, 1)
	sortRects(seq)
	sortRects(par)

	if len(seq) != len(par) {
		t.Fatalf("Expected %d rects, got %d", len(seq), len(par))
	}
	for i := range seq {
		if seq[i] != par[i] {
			t.Errorf("Rect %d differs: %v vs %v", i, seq[i], par[i])
		}
	}
}

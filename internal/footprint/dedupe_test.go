package footprint

import (
	"testing"

	"github.com/paulmach/orb"
)

func square(x, y, size float64) orb.Polygon {
	return orb.Polygon{{
		{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y},
	}}
}

func TestDedupeRemovesIdenticalFootprints(t *testing.T) {
	polys := []orb.Polygon{
		square(0, 0, 1),
		square(5, 5, 2),
		square(0, 0, 1),
		square(0, 0, 1),
	}

	unique := Dedupe(polys)
	if len(unique) != 2 {
		t.Fatalf("Expected 2 unique footprints, got %d", len(unique))
	}
}

func TestDedupeIgnoresVertexOrder(t *testing.T) {
	a := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
	// Same vertex set starting from a different corner.
	b := orb.Polygon{{{1, 1}, {0, 1}, {0, 0}, {1, 0}, {1, 1}}}

	unique := Dedupe([]orb.Polygon{a, b})
	if len(unique) != 1 {
		t.Fatalf("Expected rotated duplicates to collapse, got %d footprints", len(unique))
	}
}

func TestDedupeKeepsFirstOccurrenceOrder(t *testing.T) {
	first := square(0, 0, 1)
	second := square(9, 9, 1)
	unique := Dedupe([]orb.Polygon{first, second, first})

	if len(unique) != 2 {
		t.Fatalf("Expected 2 footprints, got %d", len(unique))
	}
	if unique[0][0][0] != (orb.Point{0, 0}) || unique[1][0][0] != (orb.Point{9, 9}) {
		t.Errorf("Expected input order to be preserved, got %v", unique)
	}
}

func TestDedupeDistinguishesNearbyFootprints(t *testing.T) {
	a := square(0, 0, 1)
	b := square(0, 0, 1.0000001)

	unique := Dedupe([]orb.Polygon{a, b})
	if len(unique) != 2 {
		t.Fatalf("Expected bit-different footprints to stay distinct, got %d", len(unique))
	}
}

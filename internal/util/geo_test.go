package util

import (
	"math"
	"testing"
)

func TestHaversineDistanceKnownPoints(t *testing.T) {
	// Berlin to Hamburg, roughly 255 km.
	d := HaversineDistance(52.520008, 13.404954, 53.551086, 9.993682)
	if math.Abs(d-255000) > 5000 {
		t.Errorf("Expected ~255km, got %.0fm", d)
	}
}

func TestHaversineDistanceZero(t *testing.T) {
	if d := HaversineDistance(48.1, 11.5, 48.1, 11.5); d != 0 {
		t.Errorf("Expected zero distance for identical points, got %v", d)
	}
}

func TestHaversineDistanceSymmetric(t *testing.T) {
	a := HaversineDistance(50, 8, 51, 9)
	b := HaversineDistance(51, 9, 50, 8)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("Expected symmetric distance, got %v and %v", a, b)
	}
}

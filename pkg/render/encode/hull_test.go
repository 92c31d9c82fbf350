package encode

import (
	"math"
	"testing"
)

func TestConvexHullSquare(t *testing.T) {
	points := []Point{
		{0, 0}, {10, 0}, {10, 10}, {0, 10},
		{5, 5}, {3, 7}, // interior points must not appear
	}
	hull := ConvexHull(points)
	if len(hull) != 4 {
		t.Fatalf("hull has %d vertices, want 4: %v", len(hull), hull)
	}
	for _, p := range hull {
		if p == (Point{5, 5}) || p == (Point{3, 7}) {
			t.Errorf("interior point %v leaked into hull", p)
		}
	}
}

func TestConvexHullCounterClockwise(t *testing.T) {
	hull := ConvexHull([]Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	if len(hull) < 3 {
		t.Fatalf("unexpected hull %v", hull)
	}
	// Shoelace area is positive for counter-clockwise winding.
	var area float64
	for i, p := range hull {
		q := hull[(i+1)%len(hull)]
		area += p.X*q.Y - q.X*p.Y
	}
	if area <= 0 {
		t.Errorf("hull winding is clockwise, signed area %v", area)
	}
}

func TestConvexHullDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
	}{
		{"empty", nil},
		{"single", []Point{{1, 2}}},
		{"two points", []Point{{0, 0}, {5, 5}}},
		{"duplicates collapse", []Point{{1, 1}, {1, 1}, {1, 1}, {1, 1}}},
		{"collinear", []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hull := ConvexHull(tt.points); hull != nil {
				t.Errorf("ConvexHull = %v, want nil", hull)
			}
		})
	}
}

func TestConvexHullFiltersNonFinite(t *testing.T) {
	points := []Point{
		{0, 0}, {10, 0}, {5, 10},
		{math.NaN(), 3}, {2, math.Inf(1)},
	}
	hull := ConvexHull(points)
	if len(hull) != 3 {
		t.Fatalf("hull has %d vertices, want 3", len(hull))
	}
	for _, p := range hull {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Errorf("non-finite point %v in hull", p)
		}
	}
}

func TestPaddedHullGrowsOutward(t *testing.T) {
	points := []Point{{-10, -10}, {10, -10}, {10, 10}, {-10, 10}}
	padded := PaddedHull(points, 5)
	if len(padded) != 4 {
		t.Fatalf("padded hull has %d vertices, want 4", len(padded))
	}
	// Centroid is the origin, so every padded vertex sits strictly farther out.
	for i, p := range padded {
		if math.Hypot(p.X, p.Y) <= math.Hypot(10, 10) {
			t.Errorf("vertex %d = %v did not move outward", i, p)
		}
	}
}

func TestPaddedHullDegenerate(t *testing.T) {
	if got := PaddedHull([]Point{{0, 0}, {1, 1}}, 5); got != nil {
		t.Errorf("PaddedHull on degenerate input = %v, want nil", got)
	}
}

func TestHullPad(t *testing.T) {
	if got := HullPad(6); got != 14 {
		t.Errorf("HullPad(6) = %v, want 14", got)
	}
}

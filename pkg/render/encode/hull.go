package encode

import (
	"math"
	"sort"
)

// =============================================================================
// Cluster Boundary (Convex Hull)
// =============================================================================

// Point is a 2-D position used for hull computation.
type Point struct {
	X, Y float64
}

// ConvexHull computes the convex hull of points using the monotone chain
// algorithm, returned in counter-clockwise order. Fewer than 3 distinct
// points yield nil: degenerate clusters are skipped, not errored.
//
// Runs in O(k log k) for k input points, so per-tick recomputation over
// per-cluster point buffers stays within the frame budget.
func ConvexHull(points []Point) []Point {
	pts := dedupe(points)
	if len(pts) < 3 {
		return nil
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	var lower []Point
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []Point
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		return nil
	}
	return hull
}

// PaddedHull computes the convex hull and pushes each vertex outward from
// the hull centroid by pad. The pad is typically half a node diameter plus a
// fixed margin, so boundary strokes clear the member nodes.
func PaddedHull(points []Point, pad float64) []Point {
	hull := ConvexHull(points)
	if hull == nil {
		return nil
	}

	var cx, cy float64
	for _, p := range hull {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(hull))
	cy /= float64(len(hull))

	out := make([]Point, len(hull))
	for i, p := range hull {
		dx, dy := p.X-cx, p.Y-cy
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			out[i] = p
			continue
		}
		out[i] = Point{X: p.X + dx/dist*pad, Y: p.Y + dy/dist*pad}
	}
	return out
}

// HullPad returns the standard boundary padding for a given node radius:
// half a node diameter plus a fixed margin.
func HullPad(nodeRadius float64) float64 {
	const margin = 8
	return nodeRadius + margin
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func dedupe(points []Point) []Point {
	seen := make(map[Point]struct{}, len(points))
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

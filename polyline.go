package cycloid

import (
	"iter"
	"math"

	"honnef.co/go/curve"
)

// PolylinePath returns a closed path through the points.
func PolylinePath(pts []curve.Point) iter.Seq[curve.PathElement] {
	return func(yield func(curve.PathElement) bool) {
		if len(pts) == 0 {
			return
		}
		if !yield(curve.MoveTo(pts[0])) {
			return
		}
		for _, p := range pts[1:] {
			if !yield(curve.LineTo(p)) {
				return
			}
		}
		yield(curve.ClosePath())
	}
}

// SignedArea returns the area enclosed by the closed polyline pts. It is
// positive for counter-clockwise polylines.
func SignedArea(pts []curve.Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	return curve.SegmentsSignedArea(curve.Segments(PolylinePath(pts)))
}

// HausdorffDistance returns the Hausdorff distance between two closed
// polylines, measuring from the vertices of each to the segments of the other.
func HausdorffDistance(a, b []curve.Point) float64 {
	return max(directedHausdorff(a, b), directedHausdorff(b, a))
}

func directedHausdorff(from, to []curve.Point) float64 {
	if len(from) == 0 || len(to) == 0 {
		return math.Inf(1)
	}
	var worst float64
	for _, p := range from {
		best := math.Inf(1)
		prev := to[len(to)-1]
		for _, q := range to {
			d2, _ := curve.Line{P0: prev, P1: q}.Nearest(p, 0)
			best = min(best, d2)
			prev = q
		}
		worst = max(worst, best)
	}
	return math.Sqrt(worst)
}

// SelfIntersections returns the index pairs of non-adjacent segments of the
// closed polyline pts that cross each other. Segment i joins pts[i] and
// pts[i+1] (wrapping). Crossings at segment endpoints are not reported.
// The check is O(n²) and meant for validation only.
func SelfIntersections(pts []curve.Point) [][2]int {
	n := len(pts)
	var crossings [][2]int
	for i := 0; i < n; i++ {
		a := curve.Line{P0: pts[i], P1: pts[(i+1)%n]}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // Adjacent through wrap.
			}
			b := curve.Line{P0: pts[j], P1: pts[(j+1)%n]}
			x, nx := a.IntersectLine(b)
			if nx > 0 && interior(x[0].LineT) && interior(x[0].SegmentT) {
				crossings = append(crossings, [2]int{i, j})
			}
		}
	}
	return crossings
}

func interior(t float64) bool { return t > 0 && t < 1 }

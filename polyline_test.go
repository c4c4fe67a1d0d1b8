package cycloid_test

import (
	"math"
	"testing"

	"github.com/soypat/cycloid"
	"honnef.co/go/curve"
)

func TestSignedArea(t *testing.T) {
	square := []curve.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	if got := cycloid.SignedArea(square); math.Abs(got-4) > 1e-12 {
		t.Errorf("want area 4, got %g", got)
	}
	cw := []curve.Point{square[3], square[2], square[1], square[0]}
	if got := cycloid.SignedArea(cw); math.Abs(got+4) > 1e-12 {
		t.Errorf("want area -4 for clockwise square, got %g", got)
	}
	if got := cycloid.SignedArea(square[:2]); got != 0 {
		t.Errorf("want zero area for degenerate polyline, got %g", got)
	}
}

func TestHausdorffDistance(t *testing.T) {
	inner := []curve.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	outer := make([]curve.Point, len(inner))
	for i, p := range inner {
		outer[i] = curve.Pt(1.5*p.X, 1.5*p.Y)
	}
	// Outer corners are farthest from the inner square: distance to its corner.
	want := math.Hypot(0.5, 0.5)
	if got := cycloid.HausdorffDistance(inner, outer); math.Abs(got-want) > 1e-12 {
		t.Errorf("want %g, got %g", want, got)
	}
	if got := cycloid.HausdorffDistance(inner, inner); got != 0 {
		t.Errorf("want zero self distance, got %g", got)
	}
	if got := cycloid.HausdorffDistance(inner, nil); !math.IsInf(got, 1) {
		t.Errorf("want +Inf for empty polyline, got %g", got)
	}
}

func TestSelfIntersections(t *testing.T) {
	square := []curve.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	if x := cycloid.SelfIntersections(square); len(x) != 0 {
		t.Errorf("square should not self intersect: %v", x)
	}
	bowtie := []curve.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	x := cycloid.SelfIntersections(bowtie)
	if len(x) != 1 || x[0] != [2]int{0, 2} {
		t.Errorf("want single crossing between segments 0 and 2, got %v", x)
	}
	// Repeated vertex makes segments 0 and 2 touch at an endpoint.
	repeated := []curve.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	if x := cycloid.SelfIntersections(repeated); len(x) != 0 {
		t.Errorf("touching segments should not count as crossings: %v", x)
	}
}

package cycloid

import (
	"errors"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"honnef.co/go/curve"
)

// OffsetSample is one slot of a contracted profile. When the centerline
// tangent at the slot has zero length no point can be computed and Skipped is set.
type OffsetSample struct {
	Point   curve.Point
	Skipped bool
}

// Profile is the contracted cycloid: the centerline offset inward by the pin
// radius. It is implicitly closed, the last point connects to the first.
type Profile struct {
	samples []OffsetSample
	skipped int
}

// Samples returns every slot of the profile including skipped ones.
// The returned slice must not be modified.
func (pf *Profile) Samples() []OffsetSample { return pf.samples }

// Skipped returns the amount of degenerate (zero length tangent) slots.
func (pf *Profile) Skipped() int { return pf.skipped }

// Len returns the amount of emitted points.
func (pf *Profile) Len() int { return len(pf.samples) - pf.skipped }

// Points returns the ordered polyline of non-skipped points.
func (pf *Profile) Points() []curve.Point {
	return pf.AppendPoints(make([]curve.Point, 0, pf.Len()))
}

// AppendPoints appends the non-skipped points to dst and returns the result.
func (pf *Profile) AppendPoints(dst []curve.Point) []curve.Point {
	for _, s := range pf.samples {
		if !s.Skipped {
			dst = append(dst, s.Point)
		}
	}
	return dst
}

// OffsetCurve contracts a centerline produced by [Centerline] by radius.
// Slot j of the profile is computed from centerline points j+1 and j+2 with a
// backward difference tangent, so a centerline of length resolution+3 yields
// a profile of resolution slots.
func OffsetCurve(centerline []curve.Point, radius float64) (*Profile, error) {
	if err := checkCenterline(centerline, radius); err != nil {
		return nil, err
	}
	pf := &Profile{samples: make([]OffsetSample, len(centerline)-3)}
	for j := range pf.samples {
		pf.samples[j] = offsetSample(centerline[j+1], centerline[j+2], radius)
	}
	pf.countSkipped()
	return pf, nil
}

// OffsetParallel is like [OffsetCurve] but splits the work among workers
// goroutines. Each worker reads the shared centerline and writes a disjoint
// range of slots so the result is identical to OffsetCurve's.
// If workers <= 0 GOMAXPROCS is used.
func OffsetParallel(centerline []curve.Point, radius float64, workers int) (*Profile, error) {
	if err := checkCenterline(centerline, radius); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pf := &Profile{samples: make([]OffsetSample, len(centerline)-3)}
	n := len(pf.samples)
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for j := start; j < end; j++ {
				pf.samples[j] = offsetSample(centerline[j+1], centerline[j+2], radius)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	pf.countSkipped()
	return pf, nil
}

func checkCenterline(centerline []curve.Point, radius float64) error {
	switch {
	case len(centerline) < 6:
		return errors.New("centerline needs at least 6 samples (resolution 3 plus padding)")
	case radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0):
		return errors.New("offset radius must be finite and non-negative")
	}
	return nil
}

// offsetSample displaces cur by radius along the left normal of the
// segment prev→cur.
func offsetSample(prev, cur curve.Point, radius float64) OffsetSample {
	tangent := cur.Sub(prev)
	dist := tangent.Hypot()
	if dist == 0 {
		return OffsetSample{Point: cur, Skipped: true}
	}
	normal := curve.Vec(-tangent.Y/dist, tangent.X/dist)
	return OffsetSample{Point: cur.Translate(normal.Mul(radius))}
}

func (pf *Profile) countSkipped() {
	pf.skipped = 0
	for _, s := range pf.samples {
		if s.Skipped {
			pf.skipped++
		}
	}
}

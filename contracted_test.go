package cycloid_test

import (
	"math"
	"testing"

	"github.com/soypat/cycloid"
	"honnef.co/go/curve"
)

func TestAnalyticProfileMatchesFiniteDifference(t *testing.T) {
	p := cycloid.DefaultParameters()
	p.Resolution = 1440
	analytic, err := cycloid.AnalyticProfile(p)
	if err != nil {
		t.Fatal(err)
	}
	disk, err := cycloid.Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	if analytic.Len() != p.Resolution || analytic.Skipped() != 0 {
		t.Fatalf("want %d analytic points, got %d (%d skipped)", p.Resolution, analytic.Len(), analytic.Skipped())
	}
	h := cycloid.HausdorffDistance(analytic.Points(), disk.Outline())
	if h > 0.01 {
		t.Errorf("analytic and finite difference profiles differ by %g", h)
	}
	if cycloid.SignedArea(analytic.Points()) >= cycloid.SignedArea(disk.Centerline[:p.Resolution]) {
		t.Error("analytic profile not contracted")
	}
}

func TestEpicycloidDerivatives(t *testing.T) {
	dv, err := cycloid.Derive(cycloid.DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}
	ep := cycloid.NewEpicycloid(dv)
	const h = 1e-6
	for _, theta := range []float64{0, 0.1, 1, 2.5, 4, 6} {
		num := ep.Eval(theta + h).Sub(ep.Eval(theta - h)).Mul(1 / (2 * h))
		if d := num.Sub(ep.Deriv(theta)).Hypot(); d > 1e-5 {
			t.Errorf("theta=%g: derivative mismatch %g", theta, d)
		}
		num2 := ep.Deriv(theta + h).Sub(ep.Deriv(theta - h)).Mul(1 / (2 * h))
		if d := num2.Sub(ep.Deriv2(theta)).Hypot(); d > 1e-4 {
			t.Errorf("theta=%g: second derivative mismatch %g", theta, d)
		}
		if n := ep.Normal(theta).Hypot(); math.Abs(n-1) > 1e-12 {
			t.Errorf("theta=%g: normal not unit: %g", theta, n)
		}
	}
	// Lobe tip at theta=0 has radius of curvature (R+ek)³/((R+ek)(R+ek²)) = 10mm.
	if k := ep.Curvature(0); math.Abs(k-0.1) > 1e-9 {
		t.Errorf("want lobe tip curvature 0.1, got %g", k)
	}
}

func TestContractedCurveDerivative(t *testing.T) {
	cc, err := cycloid.NewContractedCurve(cycloid.DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}
	const h = 1e-7
	for _, tt := range []float64{0.01, 0.2, 0.33, 0.5, 0.77, 0.99} {
		_, d := cc.SamplePtDeriv(tt)
		num := cc.Eval(tt + h).Sub(cc.Eval(tt - h)).Mul(1 / (2 * h))
		if diff := num.Sub(d).Hypot(); diff > 1e-3*d.Hypot() {
			t.Errorf("t=%g: derivative %v differs from numerical %v", tt, d, num)
		}
		sample := cc.SamplePtTangent(tt, 1)
		if sample.Tangent.Dot(d) <= 0 {
			t.Errorf("t=%g: tangent points against derivative", tt)
		}
	}
}

func TestUndercut(t *testing.T) {
	p := cycloid.DefaultParameters()
	cc, err := cycloid.NewContractedCurve(p)
	if err != nil {
		t.Fatal(err)
	}
	if cc.Undercut(3600) {
		t.Error("default parameters should not undercut")
	}
	if _, ok := cc.BreakCusp(0, 1); ok {
		t.Error("found cusp in profile without undercut")
	}
	p.PinDiameter = 25
	cc, err = cycloid.NewContractedCurve(p)
	if err != nil {
		t.Fatal(err)
	}
	if !cc.Undercut(3600) {
		t.Error("pin radius 12.5 over 10mm lobe tip radius should undercut")
	}
	cusp, ok := cc.BreakCusp(0.01, 0.1)
	if !ok {
		t.Fatal("expected cusp near first lobe tip")
	}
	_, d := cc.SamplePtDeriv(cusp)
	if d.Hypot() > 1e-3 {
		t.Errorf("derivative at cusp %g should vanish, got %v", cusp, d)
	}
}

func TestBezierProfile(t *testing.T) {
	const accuracy = 1e-3
	for _, pins := range []int{9, 10} {
		p := cycloid.DefaultParameters()
		p.NumPins = pins
		path, err := cycloid.BezierProfile(p, accuracy)
		if err != nil {
			t.Fatal(err)
		}
		cc, _ := cycloid.NewContractedCurve(p)
		var first, last curve.Point
		var n int
		for el := range path {
			switch el.Kind {
			case curve.MoveToKind:
				if n != 0 {
					t.Fatal("MoveTo after start of path")
				}
				first = el.P0
			case curve.CubicToKind:
				last = el.P2
			default:
				t.Fatalf("unexpected path element kind %v", el.Kind)
			}
			n++
		}
		if n < 2 {
			t.Fatalf("pins=%d: too few path elements: %d", pins, n)
		}
		if d := math.Sqrt(first.DistanceSquared(cc.Eval(0))); d > 1e-9 {
			t.Errorf("pins=%d: path starts %g away from profile start", pins, d)
		}
		if d := math.Sqrt(first.DistanceSquared(last)); d > 1e-6 {
			t.Errorf("pins=%d: path not closed, end %g away from start", pins, d)
		}
	}
	if _, err := cycloid.BezierProfile(cycloid.DefaultParameters(), 0); err == nil {
		t.Error("expected error for zero accuracy")
	}
}

func TestPinCentersOnCenterline(t *testing.T) {
	p := cycloid.DefaultParameters()
	pins, err := cycloid.PinCenters(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(pins) != p.NumPins {
		t.Fatalf("want %d pins, got %d", p.NumPins, len(pins))
	}
	dv, _ := cycloid.Derive(p)
	ep := cycloid.NewEpicycloid(dv)
	for i, pin := range pins {
		want := ep.Eval(2 * math.Pi * float64(i) / float64(p.NumPins))
		if d := math.Sqrt(pin.DistanceSquared(want)); d > 1e-9 {
			t.Errorf("pin %d %g away from centerline", i, d)
		}
	}
}

func TestSizeFeatures(t *testing.T) {
	for _, p := range testParameters() {
		f, err := cycloid.SizeFeatures(p)
		if err != nil {
			t.Fatal(err)
		}
		dv, _ := cycloid.Derive(p)
		if f.RollerHoleDiameter != p.PinDiameter+2*dv.Eccentricity {
			t.Errorf("roller hole %g != %g+2*%g", f.RollerHoleDiameter, p.PinDiameter, dv.Eccentricity)
		}
		if f.RollerHoles != p.NumLobes {
			t.Errorf("want %d roller holes, got %d", p.NumLobes, f.RollerHoles)
		}
		centers := f.RollerHoleCenters()
		if len(centers) != f.RollerHoles {
			t.Fatalf("want %d hole centers, got %d", f.RollerHoles, len(centers))
		}
		for _, c := range centers {
			r := math.Hypot(c.X, c.Y)
			if math.Abs(r-f.RollerPitchDiameter/2) > 1e-12 {
				t.Errorf("hole center %v off pitch circle", c)
			}
		}
	}
	p := cycloid.DefaultParameters()
	p.RollerHoles = 4
	f, err := cycloid.SizeFeatures(p)
	if err != nil {
		t.Fatal(err)
	}
	if f.RollerHoles != 4 {
		t.Errorf("want 4 roller holes, got %d", f.RollerHoles)
	}
	// Default disk: dp + 2e with e = D/N*f.
	if want := 5.3 + 2*(50./9*0.3); math.Abs(f.RollerHoleDiameter-want) > 1e-12 {
		t.Errorf("unexpected roller hole diameter %g", f.RollerHoleDiameter)
	}
}

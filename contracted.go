package cycloid

import (
	"fmt"
	"iter"
	"math"

	"honnef.co/go/curve"
)

// ContractedCurve is the exact inward offset of an [Epicycloid] by Radius.
// It is parametrized over t in [0, 1] covering one revolution and implements
// [curve.FittableCurve] so it can be approximated with cubic Béziers.
type ContractedCurve struct {
	Centerline Epicycloid
	Radius     float64
}

var _ curve.FittableCurve = (*ContractedCurve)(nil)

// NewContractedCurve returns the contracted profile of p with analytic normals.
func NewContractedCurve(p GearParameters) (*ContractedCurve, error) {
	dv, err := Derive(p)
	if err != nil {
		return nil, err
	}
	return &ContractedCurve{Centerline: NewEpicycloid(dv), Radius: dv.PinRadius}, nil
}

// EvalAngle returns the profile point at centerline angle theta.
func (cc *ContractedCurve) EvalAngle(theta float64) curve.Point {
	return cc.Centerline.Eval(theta).Translate(cc.Centerline.Normal(theta).Mul(cc.Radius))
}

// Eval returns the profile point at t in [0, 1].
func (cc *ContractedCurve) Eval(t float64) curve.Point {
	return cc.EvalAngle(2 * math.Pi * t)
}

// speedFactor is the ratio between the profile and centerline speeds. It
// crosses zero where the pin radius equals the radius of curvature (a cusp).
func (cc *ContractedCurve) speedFactor(theta float64) float64 {
	return 1 - cc.Radius*cc.Centerline.Curvature(theta)
}

// SamplePtDeriv implements [curve.FittableCurve].
func (cc *ContractedCurve) SamplePtDeriv(t float64) (curve.Point, curve.Vec2) {
	theta := 2 * math.Pi * t
	d := cc.Centerline.Deriv(theta).Mul(2 * math.Pi * cc.speedFactor(theta))
	return cc.EvalAngle(theta), d
}

// SamplePtTangent implements [curve.FittableCurve].
func (cc *ContractedCurve) SamplePtTangent(t float64, sign float64) curve.CurveFitSample {
	const cuspEpsilon = 1e-8
	theta := 2 * math.Pi * t
	factor := cc.speedFactor(theta)
	if math.Abs(factor) < cuspEpsilon {
		factor = sign * (cc.speedFactor(theta+cuspEpsilon) - cc.speedFactor(theta-cuspEpsilon))
	}
	tangent := cc.Centerline.Deriv(theta)
	if math.Signbit(factor) {
		tangent = tangent.Negate()
	}
	return curve.CurveFitSample{Point: cc.EvalAngle(theta), Tangent: tangent}
}

// BreakCusp implements [curve.FittableCurve]. A cusp only exists when the
// pin radius exceeds the radius of curvature at a lobe tip, see [ContractedCurve.Undercut].
func (cc *ContractedCurve) BreakCusp(start, end float64) (float64, bool) {
	const scan = 8
	f := func(t float64) float64 { return cc.speedFactor(2 * math.Pi * t) }
	// Stay clear of the range endpoints so a reported cusp is not found again
	// after subdivision.
	const nudge = 1e-9
	a := start + nudge
	fa := f(a)
	step := (end - start - 2*nudge) / scan
	for i := 1; i <= scan; i++ {
		b := start + nudge + float64(i)*step
		fb := f(b)
		if fa*fb < 0 {
			s := 1.0
			if fb < 0 {
				s = -1
			}
			g := func(t float64) float64 { return s * f(t) }
			k1 := 0.2 / (b - a)
			const itpEpsilon = 1e-12
			return curve.SolveITP(g, a, b, itpEpsilon, 1, k1, s*fa, s*fb), true
		}
		a, fa = b, fb
	}
	return 0, false
}

// Undercut reports whether the pin radius exceeds the radius of curvature of
// the centerline at any of samples evenly spaced angles. An undercut profile
// has cusps and self-intersects.
func (cc *ContractedCurve) Undercut(samples int) bool {
	return cc.MinSpeedFactor(samples) <= 0
}

// MinSpeedFactor returns the minimum of 1-r·κ over samples evenly spaced angles.
func (cc *ContractedCurve) MinSpeedFactor(samples int) float64 {
	minf := math.Inf(1)
	for i := range samples {
		minf = min(minf, cc.speedFactor(2*math.Pi*float64(i)/float64(samples)))
	}
	return minf
}

// AnalyticProfile samples the contracted curve of p with closed-form normals
// at the same angles as the finite difference profile of [Generate], that is
// slot j is at the angle of centerline index j+2. No wrap padding is needed.
func AnalyticProfile(p GearParameters) (*Profile, error) {
	cc, err := NewContractedCurve(p)
	if err != nil {
		return nil, err
	}
	pf := &Profile{samples: make([]OffsetSample, p.Resolution)}
	for j := range pf.samples {
		theta := sampleAngle(j+2, p.Resolution)
		if cc.Centerline.Deriv(theta).Hypot2() == 0 {
			pf.samples[j] = OffsetSample{Point: cc.Centerline.Eval(theta), Skipped: true}
			continue
		}
		pf.samples[j] = OffsetSample{Point: cc.EvalAngle(theta)}
	}
	pf.countSkipped()
	return pf, nil
}

// BezierProfile approximates the contracted curve of p with cubic Béziers
// within accuracy. The path starts with a MoveTo and ends on its starting point.
func BezierProfile(p GearParameters, accuracy float64) (iter.Seq[curve.PathElement], error) {
	cc, err := NewContractedCurve(p)
	if err != nil {
		return nil, err
	}
	if !(accuracy > 0) {
		return nil, fmt.Errorf("%w: accuracy must be positive", ErrInvalidParameter)
	}
	return curve.FitToBezPath(cc, accuracy), nil
}

package cycloid

import (
	"math"

	"honnef.co/go/curve"
)

// Epicycloid is the centerline of a cycloidal disk: a point at distance
// MeanRadius from the origin displaced by Eccentricity along an angle
// that rotates Frequency times faster.
//
//	x(θ) = R·cos(θ) + e·cos(kθ)
//	y(θ) = R·sin(θ) + e·sin(kθ)
type Epicycloid struct {
	MeanRadius   float64 // R = (d+δ)/2
	Eccentricity float64 // e
	Frequency    float64 // k = (d+δ)/δ
}

// NewEpicycloid returns the centerline described by the derived constants.
func NewEpicycloid(dv Derived) Epicycloid {
	return Epicycloid{
		MeanRadius:   dv.MeanRadius(),
		Eccentricity: dv.Eccentricity,
		Frequency:    dv.LobeFrequency(),
	}
}

// Eval returns the centerline point at angle theta.
func (ep Epicycloid) Eval(theta float64) curve.Point {
	s, c := math.Sincos(theta)
	sk, ck := math.Sincos(theta * ep.Frequency)
	return curve.Pt(
		ep.MeanRadius*c+ep.Eccentricity*ck,
		ep.MeanRadius*s+ep.Eccentricity*sk,
	)
}

// Deriv returns the first derivative with respect to theta.
func (ep Epicycloid) Deriv(theta float64) curve.Vec2 {
	s, c := math.Sincos(theta)
	sk, ck := math.Sincos(theta * ep.Frequency)
	ek := ep.Eccentricity * ep.Frequency
	return curve.Vec(
		-ep.MeanRadius*s-ek*sk,
		ep.MeanRadius*c+ek*ck,
	)
}

// Deriv2 returns the second derivative with respect to theta.
func (ep Epicycloid) Deriv2(theta float64) curve.Vec2 {
	s, c := math.Sincos(theta)
	sk, ck := math.Sincos(theta * ep.Frequency)
	ekk := ep.Eccentricity * ep.Frequency * ep.Frequency
	return curve.Vec(
		-ep.MeanRadius*c-ekk*ck,
		-ep.MeanRadius*s-ekk*sk,
	)
}

// Curvature returns the signed curvature at theta. It is positive where the
// curve turns counter-clockwise (convex lobe tips) and negative in the valleys.
func (ep Epicycloid) Curvature(theta float64) float64 {
	d1 := ep.Deriv(theta)
	d2 := ep.Deriv2(theta)
	speed := d1.Hypot()
	return d1.Cross(d2) / (speed * speed * speed)
}

// Normal returns the unit normal at theta obtained by rotating the tangent
// 90° counter-clockwise. For the counter-clockwise centerline it points
// toward the disk center.
func (ep Epicycloid) Normal(theta float64) curve.Vec2 {
	d := ep.Deriv(theta)
	h := d.Hypot()
	return curve.Vec(-d.Y/h, d.X/h)
}

// sampleAngle maps sample index i to an angle such that resolution
// indices span one revolution.
func sampleAngle(i, resolution int) float64 {
	circlePi := float64(resolution) * 0.5
	return float64(i) * math.Pi / circlePi
}

// Centerline samples the un-offset epicycloid of p. The returned slice has
// Resolution+3 points; the last three continue past 2π so that neighbor
// lookups at the wrap boundary need no index arithmetic.
func Centerline(p GearParameters) ([]curve.Point, error) {
	dv, err := Derive(p)
	if err != nil {
		return nil, err
	}
	return sampleCenterline(NewEpicycloid(dv), p.Resolution), nil
}

func sampleCenterline(ep Epicycloid, resolution int) []curve.Point {
	pts := make([]curve.Point, resolution+3)
	for i := range pts {
		pts[i] = ep.Eval(sampleAngle(i, resolution))
	}
	return pts
}

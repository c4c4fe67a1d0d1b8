package cycloid

import (
	"math"

	"honnef.co/go/curve"
)

// Features are the dimensions of the holes cut through the disk. They are
// consumed by whatever builds the solid; this package does not cut them.
type Features struct {
	CenterHoleDiameter float64
	Thickness          float64
	// RollerHoleDiameter is the output roller pin diameter enlarged by twice the
	// eccentricity since the disk center orbits the pin center by e.
	RollerHoleDiameter  float64
	RollerPitchDiameter float64
	RollerHoles         int
}

// SizeFeatures computes the hole dimensions of p.
func SizeFeatures(p GearParameters) (Features, error) {
	dv, err := Derive(p)
	if err != nil {
		return Features{}, err
	}
	return sizeFeatures(p, dv), nil
}

func sizeFeatures(p GearParameters, dv Derived) Features {
	holes := p.RollerHoles
	if holes == 0 {
		holes = p.NumLobes
	}
	return Features{
		CenterHoleDiameter:  p.CenterHoleDiameter,
		Thickness:           p.Thickness,
		RollerHoleDiameter:  p.PinDiameter + 2*dv.Eccentricity,
		RollerPitchDiameter: p.RollerPitchDiameter,
		RollerHoles:         holes,
	}
}

// RollerHoleCenters returns the roller hole centers evenly spaced on the
// pitch circle, the first one on the positive x axis.
func (f Features) RollerHoleCenters() []curve.Point {
	centers := make([]curve.Point, f.RollerHoles)
	r := f.RollerPitchDiameter / 2
	for i := range centers {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(f.RollerHoles))
		centers[i] = curve.Pt(r*c, r*s)
	}
	return centers
}

// PinCenters returns the ring pin centers expressed in the disk frame with
// the disk at its reference position: rotation zero and its center displaced
// by -e along x from the ring center. In that position every pin center lies on
// the centerline when NumPins-NumLobes is 1.
func PinCenters(p GearParameters) ([]curve.Point, error) {
	dv, err := Derive(p)
	if err != nil {
		return nil, err
	}
	centers := make([]curve.Point, p.NumPins)
	r := p.PinCircleDiameter / 2
	for i := range centers {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(p.NumPins))
		centers[i] = curve.Pt(r*c+dv.Eccentricity, r*s)
	}
	return centers, nil
}

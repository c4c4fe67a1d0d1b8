package cycloid

import "honnef.co/go/curve"

// Disk is the result of running all profile stages on a set of [GearParameters].
type Disk struct {
	Params  GearParameters
	Derived Derived
	// Centerline is the raw epicycloid with Resolution+3 samples, exposed so
	// callers may validate the profile without re-deriving parameters.
	Centerline []curve.Point
	Profile    *Profile
	Features   Features
}

// Generate derives the constants of p, samples the centerline, contracts it
// by the pin radius and sizes the disk features. Only invalid parameters abort
// generation; degenerate segments are reported by [Profile.Skipped].
func Generate(p GearParameters) (*Disk, error) {
	dv, err := Derive(p)
	if err != nil {
		return nil, err
	}
	centerline := sampleCenterline(NewEpicycloid(dv), p.Resolution)
	profile, err := OffsetCurve(centerline, dv.PinRadius)
	if err != nil {
		return nil, err
	}
	return &Disk{
		Params:     p,
		Derived:    dv,
		Centerline: centerline,
		Profile:    profile,
		Features:   sizeFeatures(p, dv),
	}, nil
}

// Outline returns the profile polyline handed to a solid modeling kernel:
// build a closed wire, face it and extrude by Features.Thickness.
func (d *Disk) Outline() []curve.Point {
	return d.Profile.Points()
}

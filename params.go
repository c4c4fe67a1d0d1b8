package cycloid

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is wrapped by all errors returned from parameter validation.
var ErrInvalidParameter = errors.New("invalid gear parameter")

// MaxResolution bounds GearParameters.Resolution so sample buffers can be allocated.
const MaxResolution = 1 << 24

// GearParameters define a cycloidal disk. All lengths are in millimeters.
type GearParameters struct {
	// PinCircleDiameter is the diameter of the circle on which the ring pins are centered (D).
	PinCircleDiameter float64
	// PinDiameter is the diameter of the ring pins (dp).
	PinDiameter float64
	// NumLobes is the lobe count of the disk (n).
	NumLobes int
	// NumPins is the amount of ring pins (N). Must be greater than NumLobes
	// and divisible by NumPins-NumLobes so the profile closes after one revolution.
	NumPins int
	// EccentricityFactor scales the rolling circle diameter to obtain the eccentricity.
	// Must be in the open interval (0, 0.5).
	EccentricityFactor float64
	// CenterHoleDiameter is the diameter of the bore for the eccentric bearing.
	CenterHoleDiameter float64
	// Thickness is the disk extrusion length.
	Thickness float64
	// Resolution is the amount of samples taken over one revolution of the profile.
	Resolution int

	// RollerPitchDiameter is the diameter of the circle on which roller holes are centered.
	RollerPitchDiameter float64
	// RollerHoles is the amount of roller holes. Zero means NumLobes.
	// A non-zero value must divide NumLobes.
	RollerHoles int
}

// DefaultParameters returns a 8:1 disk with 9 pins of 5.3mm on a 50mm pin circle.
func DefaultParameters() GearParameters {
	return GearParameters{
		PinCircleDiameter:   50,
		PinDiameter:         5.3,
		NumLobes:            8,
		NumPins:             9,
		EccentricityFactor:  0.3,
		CenterHoleDiameter:  24.1,
		Thickness:           3,
		Resolution:          360,
		RollerPitchDiameter: 34,
	}
}

// Validate returns a non-nil error wrapping [ErrInvalidParameter] if the parameters
// cannot describe a cycloidal disk.
func (p GearParameters) Validate() (err error) {
	switch {
	case !isPositiveFinite(p.PinCircleDiameter):
		err = errors.New("pin circle diameter must be positive")
	case !isPositiveFinite(p.PinDiameter):
		err = errors.New("pin diameter must be positive")
	case p.PinDiameter >= p.PinCircleDiameter:
		err = errors.New("pin diameter must be smaller than pin circle diameter")
	case p.NumLobes < 1:
		err = fmt.Errorf("need at least one lobe, got %d", p.NumLobes)
	case p.NumPins <= p.NumLobes:
		err = fmt.Errorf("number of pins (%d) must exceed number of lobes (%d)", p.NumPins, p.NumLobes)
	case p.NumPins%(p.NumPins-p.NumLobes) != 0:
		err = fmt.Errorf("pin-lobe difference %d does not divide pin count %d, profile would not close", p.NumPins-p.NumLobes, p.NumPins)
	case !(p.EccentricityFactor > 0 && p.EccentricityFactor < 0.5):
		err = fmt.Errorf("eccentricity factor %g outside (0, 0.5)", p.EccentricityFactor)
	case p.Resolution < 3:
		err = fmt.Errorf("resolution %d less than 3", p.Resolution)
	case p.Resolution > MaxResolution:
		err = fmt.Errorf("resolution %d exceeds maximum %d", p.Resolution, MaxResolution)
	case !isPositiveFinite(p.Thickness):
		err = errors.New("thickness must be positive")
	case p.CenterHoleDiameter < 0 || math.IsNaN(p.CenterHoleDiameter) || math.IsInf(p.CenterHoleDiameter, 0):
		err = errors.New("negative or non-finite center hole diameter")
	case p.RollerPitchDiameter < 0 || math.IsNaN(p.RollerPitchDiameter) || math.IsInf(p.RollerPitchDiameter, 0):
		err = errors.New("negative or non-finite roller pitch diameter")
	case p.RollerHoles < 0:
		err = errors.New("negative roller hole count")
	case p.RollerHoles > 0 && p.NumLobes%p.RollerHoles != 0:
		err = fmt.Errorf("roller hole count %d does not divide lobe count %d", p.RollerHoles, p.NumLobes)
	}
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err)
	}
	return nil
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Derived holds the constants used by the epicycloid equations. They are
// pure functions of [GearParameters], see [Derive].
type Derived struct {
	// TransmissionRatio is n/(N-n).
	TransmissionRatio float64
	// RollingCircleDiameter is D/N (δ).
	RollingCircleDiameter float64
	// BaseCircleDiameter is TransmissionRatio*D/N (d).
	BaseCircleDiameter float64
	// Eccentricity is δ times the eccentricity factor (e).
	Eccentricity float64
	// PinRadius is half the pin diameter (rp).
	PinRadius float64
}

// Derive validates p and computes its derived constants.
func Derive(p GearParameters) (Derived, error) {
	if err := p.Validate(); err != nil {
		return Derived{}, err
	}
	N := float64(p.NumPins)
	n := float64(p.NumLobes)
	ratio := n / (N - n)
	delta := p.PinCircleDiameter / N
	return Derived{
		TransmissionRatio:     ratio,
		RollingCircleDiameter: delta,
		BaseCircleDiameter:    ratio * p.PinCircleDiameter / N,
		Eccentricity:          delta * p.EccentricityFactor,
		PinRadius:             p.PinDiameter / 2,
	}, nil
}

// MeanRadius is the radius (d+δ)/2 about which the centerline oscillates.
func (dv Derived) MeanRadius() float64 {
	return (dv.BaseCircleDiameter + dv.RollingCircleDiameter) / 2
}

// LobeFrequency is (d+δ)/δ = N/(N-n), the rolling circle revolutions per
// centerline revolution. It is an integer for valid parameters, which makes
// the centerline periodic in 2π.
func (dv Derived) LobeFrequency() float64 {
	return (dv.BaseCircleDiameter + dv.RollingCircleDiameter) / dv.RollingCircleDiameter
}

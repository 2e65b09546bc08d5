// Package psychrometrics computes moist-air properties at standard sea-level
// pressure from dry-bulb temperature and relative humidity.
//
// Saturation pressure follows the ASHRAE 2017 correlation over liquid water
// expressed in the Rankine scale. All quantities are Imperial.
package psychrometrics

import (
	"fmt"
	"math"

	"psychrometric-calculator/units"
)

// AtmosphericPressure is standard sea-level pressure
const AtmosphericPressure units.PSIA = 14.696

// ASHRAE 2017 saturation pressure coefficients, yielding ln(psf)
const (
	c1 = -10440.397
	c2 = -11.29465
	c3 = -0.027022355
	c4 = 0.00001289036
	c5 = -0.0000000024780681
	c6 = 6.5459673
)

const (
	squareInchesPerSquareFoot = 144
	molecularWeightRatio      = 0.622
	specificVolumeFactor      = 0.370486
	vaporVolumeFactor         = 1.607858
	dryAirSpecificHeat        = 0.24
	latentHeat                = 1061
	vaporSpecificHeat         = 0.444
)

// Properties is the state of a parcel of moist air
type Properties struct {
	DryBulb          units.Fahrenheit
	RelativeHumidity units.RelativeHumidity

	// Saturation pressure of water vapor at the dry-bulb temperature
	SaturationPressure units.PSIA
	// Partial pressure of the water vapor actually present
	VaporPressure units.PSIA

	HumidityRatio    units.GrainsPerPound
	SpecificVolume   units.CubicFeetPerPound
	SpecificEnthalpy units.BTUPerPound
	// Density is the reciprocal of SpecificVolume
	Density units.PoundsPerCubicFoot
}

// SaturationPressure returns the saturation vapor pressure of water at the
// given absolute temperature. The result is NaN when t is not positive.
func SaturationPressure(t units.Rankine) units.PSIA {
	r := float64(t)
	lnPsf := c1/r + c2 + c3*r + c4*math.Pow(r, 2) + c5*math.Pow(r, 3) + c6*math.Log(r)
	return units.PSIA(math.Exp(lnPsf) / squareInchesPerSquareFoot)
}

// Compute derives the properties of moist air. Inputs are not clamped; a
// relative humidity above 100% is evaluated as given. Only the singular
// cases of the formula are reported, as a *ComputationError.
func Compute(dryBulb units.Fahrenheit, relativeHumidity units.RelativeHumidity) (*Properties, error) {
	t := dryBulb.Rankine()
	if t <= 0 {
		return nil, &ComputationError{
			Reason: fmt.Sprintf("absolute temperature %g °R is not above absolute zero", float64(t)),
		}
	}

	db := float64(dryBulb)
	patm := float64(AtmosphericPressure)

	pws := SaturationPressure(t)
	pw := relativeHumidity.Fraction() * float64(pws)
	if pw >= patm {
		return nil, &ComputationError{
			Reason: fmt.Sprintf("vapor pressure %g psia reaches atmospheric pressure %g psia", pw, patm),
		}
	}

	w := units.GrainsPerPoundMass * molecularWeightRatio * (pw / (patm - pw))
	ratio := w / units.GrainsPerPoundMass
	v := specificVolumeFactor * float64(t) * (1 + vaporVolumeFactor*w/units.GrainsPerPoundMass) / patm
	h := dryAirSpecificHeat*db + ratio*(latentHeat+vaporSpecificHeat*db)
	density := 1 / v

	for _, output := range []struct {
		name  string
		value float64
	}{
		{"saturation pressure", float64(pws)},
		{"humidity ratio", w},
		{"specific volume", v},
		{"specific enthalpy", h},
		{"density", density},
	} {
		if math.IsNaN(output.value) || math.IsInf(output.value, 0) {
			return nil, &ComputationError{
				Reason: fmt.Sprintf("%s is not finite", output.name),
			}
		}
	}

	return &Properties{
		DryBulb:            dryBulb,
		RelativeHumidity:   relativeHumidity,
		SaturationPressure: pws,
		VaporPressure:      units.PSIA(pw),
		HumidityRatio:      units.GrainsPerPound(w),
		SpecificVolume:     units.CubicFeetPerPound(v),
		SpecificEnthalpy:   units.BTUPerPound(h),
		Density:            units.PoundsPerCubicFoot(density),
	}, nil
}

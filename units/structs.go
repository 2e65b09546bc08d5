package units

// RelativeHumidity is expressed as a percentage, nominally 0 to 100
type RelativeHumidity float64
type Celsius float64
type Fahrenheit float64
type Rankine float64

// PSIA is pounds per square inch, absolute
type PSIA float64

type GrainsPerPound float64
type CubicFeetPerPound float64
type BTUPerPound float64
type PoundsPerCubicFoot float64

// GrainsPerPoundMass is the number of grains in one pound
const GrainsPerPoundMass = 7000

const rankineOffset = 459.67

func (c Celsius) Fahrenheit() Fahrenheit {
	return Fahrenheit(float64(c)*9/5 + 32)
}

func (f Fahrenheit) Rankine() Rankine {
	return Rankine(float64(f) + rankineOffset)
}

// Fraction converts a percentage to a ratio in the 0 to 1 range
func (rh RelativeHumidity) Fraction() float64 {
	return float64(rh) / 100
}

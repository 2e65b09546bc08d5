package calculator

import (
	"fmt"

	"psychrometric-calculator/psychrometrics"
)

// Field is one formatted row of a calculation result
type Field struct {
	Label string
	Value string
}

func (f Field) String() string {
	return f.Label + ": " + f.Value
}

// Format renders the properties with their fixed precision and units
func Format(props *psychrometrics.Properties) []Field {
	return []Field{
		{"Dry Bulb Temperature", fmt.Sprintf("%.2f °F", float64(props.DryBulb))},
		{"Relative Humidity", fmt.Sprintf("%.2f %%", float64(props.RelativeHumidity))},
		{"Humidity Ratio", fmt.Sprintf("%.2f grains/lb", float64(props.HumidityRatio))},
		{"Specific Volume", fmt.Sprintf("%.4f ft³/lb", float64(props.SpecificVolume))},
		{"Specific Enthalpy", fmt.Sprintf("%.2f BTU/lb", float64(props.SpecificEnthalpy))},
		{"Density", fmt.Sprintf("%.3f lb/ft³", float64(props.Density))},
	}
}

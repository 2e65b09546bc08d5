package psychrometrics

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"psychrometric-calculator/units"
)

func TestCompute_StandardRoomConditions(t *testing.T) {
	props, err := Compute(75, 50)
	require.NoError(t, err)

	temp := 75.0 + 459.67
	pws := math.Exp(c1/temp+c2+c3*temp+c4*temp*temp+c5*temp*temp*temp+c6*math.Log(temp)) / 144
	pw := 0.5 * pws
	w := 7000 * 0.622 * (pw / (14.696 - pw))
	v := 0.370486 * temp * (1 + 1.607858*w/7000) / 14.696
	h := 0.24*75 + (w/7000)*(1061+0.444*75)

	assert.True(t, scalar.EqualWithinRel(pws, float64(props.SaturationPressure), 1e-12))
	assert.True(t, scalar.EqualWithinRel(w, float64(props.HumidityRatio), 1e-12))
	assert.True(t, scalar.EqualWithinRel(v, float64(props.SpecificVolume), 1e-12))
	assert.True(t, scalar.EqualWithinRel(h, float64(props.SpecificEnthalpy), 1e-12))
	assert.True(t, scalar.EqualWithinRel(1/v, float64(props.Density), 1e-12))

	assert.InDelta(t, 0.4425, float64(props.HumidityRatio), 1e-4)
	assert.InDelta(t, 13.4804, float64(props.SpecificVolume), 1e-4)
	assert.InDelta(t, 18.07, float64(props.SpecificEnthalpy), 1e-2)
	assert.InDelta(t, 0.0742, float64(props.Density), 1e-4)
	assert.Equal(t, units.Fahrenheit(75), props.DryBulb)
	assert.Equal(t, units.RelativeHumidity(50), props.RelativeHumidity)
}

func TestCompute_SaturatedAtFreezing(t *testing.T) {
	props, err := Compute(32, 100)
	require.NoError(t, err)

	pws := float64(SaturationPressure(units.Fahrenheit(32).Rankine()))
	saturated := 7000 * 0.622 * (pws / (float64(AtmosphericPressure) - pws))

	assert.True(t, scalar.EqualWithinRel(saturated, float64(props.HumidityRatio), 1e-12))
	assert.Equal(t, props.SaturationPressure, props.VaporPressure)
}

func TestCompute_IsDeterministic(t *testing.T) {
	first, err := Compute(68.3, 41.7)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Properties, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Compute(68.3, 41.7)
		}(i)
	}
	wg.Wait()

	for _, result := range results {
		require.NotNil(t, result)
		assert.Equal(t, *first, *result)
	}
}

func TestCompute_DensityIsReciprocalOfSpecificVolume(t *testing.T) {
	for _, temp := range []units.Fahrenheit{-40, 0, 32, 55.5, 75, 100, 150, 212} {
		for _, rh := range []units.RelativeHumidity{0, 10, 33.3, 50, 90, 100, 150} {
			props, err := Compute(temp, rh)
			require.NoError(t, err, "temp %v rh %v", temp, rh)

			product := float64(props.Density) * float64(props.SpecificVolume)
			assert.True(t, scalar.EqualWithinRel(1, product, 1e-9), "temp %v rh %v product %v", temp, rh, product)
		}
	}
}

func TestCompute_HumidityRatioIncreasesWithHumidity(t *testing.T) {
	previous := -1.0
	for rh := units.RelativeHumidity(0); rh <= 1000; rh += 5 {
		props, err := Compute(75, rh)
		require.NoError(t, err)

		assert.Greater(t, float64(props.HumidityRatio), previous, "rh %v", rh)
		previous = float64(props.HumidityRatio)
	}
}

func TestCompute_DryAirHasNoMoisture(t *testing.T) {
	props, err := Compute(75, 0)
	require.NoError(t, err)

	assert.Equal(t, units.GrainsPerPound(0), props.HumidityRatio)
	assert.Equal(t, units.PSIA(0), props.VaporPressure)
	assert.InDelta(t, 0.24*75, float64(props.SpecificEnthalpy), 1e-12)
}

func TestCompute_HumidityAboveSaturationIsPermitted(t *testing.T) {
	props, err := Compute(70, 120)
	require.NoError(t, err)

	saturated, err := Compute(70, 100)
	require.NoError(t, err)

	assert.Greater(t, float64(props.HumidityRatio), float64(saturated.HumidityRatio))
}

func TestCompute_Singularities(t *testing.T) {
	tests := []struct {
		name string
		temp units.Fahrenheit
		rh   units.RelativeHumidity
	}{
		{"vapor pressure exceeds atmosphere", 75, 500000},
		{"vapor pressure exceeds atmosphere when hot", 212, 15000},
		{"absolute zero", -459.67, 50},
		{"below absolute zero", -500, 50},
		{"not a number", units.Fahrenheit(math.NaN()), 50},
		{"infinite humidity", 75, units.RelativeHumidity(math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props, err := Compute(tt.temp, tt.rh)
			assert.Nil(t, props)
			require.Error(t, err)

			var computationErr *ComputationError
			assert.True(t, errors.As(err, &computationErr))
			assert.NotEmpty(t, computationErr.Error())
		})
	}
}

func TestCompute_VaporPressureJustBelowAtmosphere(t *testing.T) {
	pws := float64(SaturationPressure(units.Fahrenheit(75).Rankine()))
	rh := units.RelativeHumidity(0.999 * float64(AtmosphericPressure) / pws * 100)

	props, err := Compute(75, rh)
	require.NoError(t, err)
	assert.Greater(t, float64(props.HumidityRatio), 4000.0)
}

func TestSaturationPressure_IncreasesWithTemperature(t *testing.T) {
	cold := SaturationPressure(units.Fahrenheit(32).Rankine())
	warm := SaturationPressure(units.Fahrenheit(100).Rankine())

	assert.Greater(t, float64(warm), float64(cold))
	assert.True(t, math.IsNaN(float64(SaturationPressure(-1))))
}

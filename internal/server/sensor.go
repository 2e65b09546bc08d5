package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/syncromatics/go-kit/v2/log"

	"psychrometric-calculator/aht20"
	"psychrometric-calculator/internal/calculator"
)

var (
	sensor_readings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "psychrometric_sensor_readings_total",
			Help: "Number of readings received from the temperature and humidity sensor",
		},
	)
	sensor_computation_errors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "psychrometric_sensor_computation_errors_total",
			Help: "Number of sensor readings for which properties could not be computed",
		},
	)
	sensor_dry_bulb = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "psychrometric_sensor_dry_bulb_fahrenheit",
			Help: "Dry-bulb temperature in degrees Fahrenheit",
		},
	)
	sensor_relative_humidity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "psychrometric_sensor_relative_humidity",
			Help: "Percentage of relative humidity",
		},
	)
	sensor_humidity_ratio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "psychrometric_sensor_humidity_ratio_grains",
			Help: "Grains of moisture per pound of dry air",
		},
	)
	sensor_specific_volume = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "psychrometric_sensor_specific_volume_cubic_feet",
			Help: "Cubic feet per pound of dry air",
		},
	)
	sensor_specific_enthalpy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "psychrometric_sensor_specific_enthalpy_btu",
			Help: "BTU per pound of dry air",
		},
	)
	sensor_density = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "psychrometric_sensor_density_pounds",
			Help: "Pounds of moist air per cubic foot",
		},
	)
)

// recordReading derives the properties of a sensor reading and exports them
func recordReading(calc *calculator.Calculator, reading *aht20.Reading) {
	sensor_readings.Inc()

	result := calc.Evaluate(reading.Temperature.Fahrenheit(), reading.Humidity)
	if !result.Succeeded() {
		sensor_computation_errors.Inc()
		log.Info("failed to compute properties of sensor reading",
			"reading", reading,
			"err", result.Err)
		return
	}

	log.Debug("computed properties of sensor reading",
		"reading", reading,
		"fields", result.Fields)

	props := result.Properties
	sensor_dry_bulb.Set(float64(props.DryBulb))
	sensor_relative_humidity.Set(float64(props.RelativeHumidity))
	sensor_humidity_ratio.Set(float64(props.HumidityRatio))
	sensor_specific_volume.Set(float64(props.SpecificVolume))
	sensor_specific_enthalpy.Set(float64(props.SpecificEnthalpy))
	sensor_density.Set(float64(props.Density))
}

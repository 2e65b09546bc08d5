package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"github.com/syncromatics/go-kit/v2/cmd"
	"github.com/syncromatics/go-kit/v2/log"

	"psychrometric-calculator/aht20"
	"psychrometric-calculator/internal/calculator"
	"psychrometric-calculator/internal/web"
)

// Settings defines the configured settings for the calculator service
type Settings struct {
	HTTPPort         int           `mapstructure:"http-port"`
	MetricsPort      int           `mapstructure:"metrics-port"`
	SensorEnabled    bool          `mapstructure:"sensor-enabled"`
	AHT20I2CAddr     uint8         `mapstructure:"aht20-i2c-addr"`
	AHT20I2CBus      int           `mapstructure:"aht20-i2c-bus"`
	ReconnectTimeout time.Duration `mapstructure:"reconnect-timeout"`
	SensorInterval   time.Duration `mapstructure:"sensor-interval"`
}

const (
	DefaultHTTPPort         int           = 8080
	DefaultMetricsPort      int           = 9100
	DefaultSensorEnabled    bool          = false
	DefaultAHT20I2CAddr     uint8         = 0x38
	DefaultAHT20I2CBus      int           = 1
	DefaultReconnectTimeout time.Duration = 1 * time.Second
	DefaultSensorInterval   time.Duration = 2 * time.Second
)

func ConfigureFlags(flags *pflag.FlagSet) {
	flags.Int("http-port", DefaultHTTPPort, "Port on which to host the calculator web form")
	flags.Int("metrics-port", DefaultMetricsPort, "Port on which to host Prometheus metrics")
	flags.Bool("sensor-enabled", DefaultSensorEnabled, "Read an Asair AHT20 sensor and export the psychrometric properties of its readings")
	flags.Uint8("aht20-i2c-addr", DefaultAHT20I2CAddr, "I2C address of the Asair AHT20 sensor")
	flags.Int("aht20-i2c-bus", DefaultAHT20I2CBus, "I2C bus to which the Asair AHT20 sensor is attached")
	flags.Duration("reconnect-timeout", DefaultReconnectTimeout, "Duration to wait before attempting to reconnect to the sensor after a failure")
	flags.Duration("sensor-interval", DefaultSensorInterval, "Duration to wait between sensor readings")
}

func (s *Settings) Validate() error {
	ports := []struct {
		name string
		port int
	}{
		{"http-port", s.HTTPPort},
		{"metrics-port", s.MetricsPort},
	}
	for _, p := range ports {
		if p.port < 1 || p.port > 65535 {
			return errors.Errorf("%s %d is out of range", p.name, p.port)
		}
	}

	if s.HTTPPort == s.MetricsPort {
		return errors.Errorf("http-port and metrics-port must differ, both are %d", s.HTTPPort)
	}

	if !s.SensorEnabled {
		return nil
	}

	if s.ReconnectTimeout <= 0 {
		return errors.Errorf("reconnect-timeout %v must be positive", s.ReconnectTimeout)
	}
	if s.SensorInterval <= 0 {
		return errors.Errorf("sensor-interval %v must be positive", s.SensorInterval)
	}

	return nil
}

func Execute(settings *Settings) error {
	err := settings.Validate()
	if err != nil {
		return errors.Wrap(err, "invalid settings")
	}

	calc := calculator.NewDefault()
	handler, err := web.NewHandler(calc)
	if err != nil {
		return errors.Wrap(err, "failed to create web handler")
	}

	group := cmd.NewProcessGroup(context.Background())

	webServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", settings.HTTPPort),
		Handler: handler,
	}
	serve(group, "web", webServer)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", settings.MetricsPort),
		Handler: metricsMux,
	}
	serve(group, "metrics", metricServer)

	if settings.SensorEnabled {
		sensor := aht20.NewSensor(settings.AHT20I2CAddr, settings.AHT20I2CBus, settings.ReconnectTimeout, settings.SensorInterval)
		log.Info("starting sensor",
			"i2cAddr", settings.AHT20I2CAddr,
			"i2cBus", settings.AHT20I2CBus)
		group.Go(sensor.Start(group.Context()))
		group.Go(func() error {
			for {
				select {
				case reading, ok := <-sensor.Readings():
					if !ok {
						log.Debug("temperature and humidity sensor readings channel closed")
						return nil
					}

					recordReading(calc, reading)
				case <-group.Context().Done():
					return nil
				}
			}
		})
	}

	return group.Wait()
}

func serve(group *cmd.ProcessGroup, name string, server *http.Server) {
	log.Info("starting server",
		"name", name,
		"addr", server.Addr)
	group.Go(func() error {
		err := server.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrapf(err, "%s server failed", name)
	})
	group.Go(func() error {
		<-group.Context().Done()
		log.Info("stopping server",
			"name", name)
		return server.Close()
	})
}

package controller

import (
	"context"
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/oshokin/temp-sentinel/internal/config"
	"github.com/oshokin/temp-sentinel/internal/hardware"
	"github.com/oshokin/temp-sentinel/internal/irq"
	"github.com/oshokin/temp-sentinel/internal/logger"
	"github.com/oshokin/temp-sentinel/internal/metrics"
	"github.com/oshokin/temp-sentinel/internal/telemetry"
)

// alertSensePin is the GPIO number the sensor's alert output is wired to.
const alertSensePin = 4

// Options controls the temp-sentinel process.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// TelemetryAddress overrides the telemetry listen address from the
	// settings file.
	TelemetryAddress string
}

// Run wires the simulated hardware to a controller and drives it until the
// context is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "temp-sentinel")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if opts.TelemetryAddress != "" {
		settings.TelemetryAddress = opts.TelemetryAddress
	}

	if err = config.Validate(settings); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	// Simulated hardware: the sensor's open-drain alert output is wired to
	// the interrupt line, exactly as the real part would be.
	sensor := hardware.NewSimSensor(settings.TemperatureThreshold)
	line := irq.NewLine(alertSensePin, irq.LevelLow)
	sensor.AttachAlertPin(line)

	var (
		rec      metrics.Recorder = metrics.Nop{}
		registry *prom.Registry
	)

	if settings.TelemetryAddress != "" {
		registry = prom.NewRegistry()

		exporter, exporterErr := metrics.NewExporter("tempsentinel", registry)
		if exporterErr != nil {
			return fmt.Errorf("initialise metrics: %w", exporterErr)
		}

		rec = exporter
	}

	ctrl := New(settings, Deps{
		Sensor:       sensor,
		Display:      hardware.NewSimDisplay(),
		HeartbeatLED: hardware.NewSimLED(),
		MirrorLED:    hardware.NewSimLED(),
		AlertLED:     hardware.NewSimLED(),
		Line:         line,
		Metrics:      rec,
	})

	if settings.TelemetryAddress != "" {
		server := telemetry.NewServer(settings.TelemetryAddress, ctrl.State(), registry, sensor)

		go func() {
			if serveErr := server.Run(ctx); serveErr != nil {
				logger.Errorf(ctx, "Telemetry server failed: %v", serveErr)
			}
		}()
	}

	logger.InfoKV(ctx, "Controller starting",
		"render_period", settings.RenderPeriod,
		"sensor_poll_period", settings.SensorPollPeriod,
		"debounce_delay", settings.DebounceDelay,
		"temperature_threshold", settings.TemperatureThreshold)

	return ctrl.Run(ctx)
}

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the controller's tunables. Every field has a working
// default; a missing settings file means defaults.
type Config struct {
	// RenderPeriod is the heartbeat/render task period.
	RenderPeriod time.Duration `yaml:"render_period"`
	// SensorPollPeriod is the sensor-poll task period.
	SensorPollPeriod time.Duration `yaml:"sensor_poll_period"`
	// DebounceDelay is the one-shot alert settle delay.
	DebounceDelay time.Duration `yaml:"debounce_delay"`
	// TemperatureThreshold is the alert upper limit in Celsius.
	TemperatureThreshold float64 `yaml:"temperature_threshold"`
	// MirrorQueueCapacity bounds the flash-token queue.
	MirrorQueueCapacity int `yaml:"mirror_queue_capacity"`
	// DisplayBrightness is the display brightness level (0-15).
	DisplayBrightness int `yaml:"display_brightness"`
	// TelemetryAddress is the HTTP telemetry listen address.
	// Empty disables the telemetry server.
	TelemetryAddress string `yaml:"telemetry_addr"`
}

const (
	// DefaultConfigFilename is the default filename for controller settings.
	DefaultConfigFilename = "temp-sentinel-settings.yaml"

	// DefaultRenderPeriod is the display refresh half-cycle.
	DefaultRenderPeriod = 500 * time.Millisecond

	// DefaultSensorPollPeriod is the sensor sampling cadence.
	DefaultSensorPollPeriod = time.Second

	// DefaultDebounceDelay is the alert settle time before re-evaluation.
	DefaultDebounceDelay = 5 * time.Second

	// DefaultTemperatureThreshold is the alert upper limit in Celsius.
	DefaultTemperatureThreshold = 24.0

	// DefaultMirrorQueueCapacity bounds the flash-token queue.
	DefaultMirrorQueueCapacity = 4

	// AlertQueueCapacity is fixed at one: at most a single alert
	// notification is ever in flight.
	AlertQueueCapacity = 1

	// DefaultDisplayBrightness is the startup display brightness.
	DefaultDisplayBrightness = 1

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNonPositivePeriod is returned when a task period or delay is zero or negative.
	errNonPositivePeriod = errors.New("periods and delays must be positive")
	// errBadQueueCapacity is returned when the mirror queue capacity is below one.
	errBadQueueCapacity = errors.New("mirror queue capacity must be at least 1")
	// errBadBrightness is returned when the brightness level is out of range.
	errBadBrightness = errors.New("display brightness must be between 0 and 15")
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RenderPeriod:         DefaultRenderPeriod,
		SensorPollPeriod:     DefaultSensorPollPeriod,
		DebounceDelay:        DefaultDebounceDelay,
		TemperatureThreshold: DefaultTemperatureThreshold,
		MirrorQueueCapacity:  DefaultMirrorQueueCapacity,
		DisplayBrightness:    DefaultDisplayBrightness,
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for usable values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.RenderPeriod <= 0 || cfg.SensorPollPeriod <= 0 || cfg.DebounceDelay <= 0 {
		return errNonPositivePeriod
	}

	if cfg.MirrorQueueCapacity < 1 {
		return errBadQueueCapacity
	}

	if cfg.DisplayBrightness < 0 || cfg.DisplayBrightness > 15 {
		return errBadBrightness
	}

	if cfg.TelemetryAddress == "" {
		return nil
	}

	if _, err := net.ResolveTCPAddr("tcp", cfg.TelemetryAddress); err != nil {
		return fmt.Errorf("invalid telemetry address: %w", err)
	}

	return nil
}

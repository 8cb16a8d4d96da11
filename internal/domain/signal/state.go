package signal

import (
	"math"
	"sync/atomic"
)

// State is the shared signal handle: the latest sensor reading, the sensor's
// health and whether an alert is currently active. All three scalars are read
// across tasks and the interrupt path without a mutex; individual loads and
// stores are atomic, but the fields are only eventually consistent relative
// to each other.
//
// Writes are restricted by role: the sensor-poll task holds the
// TemperatureWriter, the alert path holds the AlertWriter, and SensorPresent
// is set once at startup. No other writers exist.
type State struct {
	// temperatureBits holds the latest temperature as IEEE-754 bits.
	temperatureBits atomic.Uint64
	// sensorPresent records whether the sensor answered at startup.
	sensorPresent atomic.Bool
	// alertActive is true from alert-token consumption until the debounce
	// timer clears it.
	alertActive atomic.Bool
}

// Snapshot is a point-in-time copy of the signal scalars, suitable for
// rendering or serialization. The fields are sampled independently.
type Snapshot struct {
	// LatestTemperature is the last successfully sampled value in Celsius.
	LatestTemperature float64 `json:"latest_temperature"`
	// SensorPresent reports whether the sensor was detected at startup.
	SensorPresent bool `json:"sensor_present"`
	// AlertActive reports whether an alert is currently active.
	AlertActive bool `json:"alert_active"`
}

// NewState returns a State with default scalars: temperature 0 (stale until
// the first successful read), sensor absent, no alert.
func NewState() *State {
	return new(State)
}

// LatestTemperature returns the last stored temperature in Celsius.
// Until the first sensor read completes this is the zero default; callers
// must tolerate it.
func (s *State) LatestTemperature() float64 {
	return math.Float64frombits(s.temperatureBits.Load())
}

// SensorPresent reports whether the sensor was detected at startup.
func (s *State) SensorPresent() bool {
	return s.sensorPresent.Load()
}

// AlertActive reports whether an alert is currently active.
func (s *State) AlertActive() bool {
	return s.alertActive.Load()
}

// MarkSensorPresent records the startup probe result. Called once during
// bootstrap; the value never changes afterwards.
func (s *State) MarkSensorPresent(present bool) {
	s.sensorPresent.Store(present)
}

// Snapshot samples the three scalars. Each field is read atomically, but the
// snapshot as a whole is not taken under a lock.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		LatestTemperature: s.LatestTemperature(),
		SensorPresent:     s.SensorPresent(),
		AlertActive:       s.AlertActive(),
	}
}

// TemperatureWriter returns the writer role for the latest-temperature field.
// Exactly one holder is expected: the sensor-poll task.
func (s *State) TemperatureWriter() TemperatureWriter {
	return TemperatureWriter{state: s}
}

// AlertWriter returns the writer role for the alert-active flag.
// Exactly one holder is expected: the alert consumer and the debounce timer
// it arms (the two run on disjoint triggering conditions).
func (s *State) AlertWriter() AlertWriter {
	return AlertWriter{state: s}
}

// TemperatureWriter is the single-writer role for the temperature scalar.
type TemperatureWriter struct {
	state *State
}

// Store records a freshly sampled temperature.
func (w TemperatureWriter) Store(celsius float64) {
	w.state.temperatureBits.Store(math.Float64bits(celsius))
}

// AlertWriter is the single-writer role for the alert-active flag.
type AlertWriter struct {
	state *State
}

// SetActive raises or clears the alert flag.
func (w AlertWriter) SetActive(active bool) {
	w.state.alertActive.Store(active)
}

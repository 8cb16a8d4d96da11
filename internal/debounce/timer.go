package debounce

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/temp-sentinel/internal/logger"
	"github.com/oshokin/temp-sentinel/internal/metrics"
)

// State is the lifecycle tag of a timer instance.
type State uint8

// Timer lifecycle states.
const (
	// StateUnarmed is the zero value; Arm never returns a timer in it.
	StateUnarmed State = iota
	// StateArmed means the one-shot delay is running.
	StateArmed
	// StateFired means the delay expired and the evaluation ran. Terminal
	// for this instance.
	StateFired
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateFired:
		return "fired"
	default:
		return "unarmed"
	}
}

// TemperatureSource supplies the latest sampled temperature.
type TemperatureSource interface {
	LatestTemperature() float64
}

// AlertSetter raises or clears the shared alert flag.
type AlertSetter interface {
	SetActive(active bool)
}

// AlertClearer resets the sensor's internal alert latch.
type AlertClearer interface {
	ClearAlert(assert bool)
}

// InterruptEnabler re-arms the alert interrupt line.
type InterruptEnabler interface {
	Enable()
}

// Config wires a timer instance to its collaborators.
type Config struct {
	// Delay is the settle time before the evaluation runs.
	Delay time.Duration
	// Threshold is the temperature upper limit in Celsius.
	Threshold float64
	// Temperature supplies the latest reading.
	Temperature TemperatureSource
	// Alert is the writer role for the shared alert flag.
	Alert AlertSetter
	// Sensor clears the device alert latch on a below-threshold firing.
	Sensor AlertClearer
	// Interrupts re-arms the alert line on a below-threshold firing.
	Interrupts InterruptEnabler
	// Metrics counts firings; nil means no recording.
	Metrics metrics.Recorder
}

// Timer is a single one-shot debounce instance.
type Timer struct {
	mu       sync.Mutex
	cfg      Config
	ctx      context.Context
	state    State
	deadline time.Time
	timer    *time.Timer
}

// Arm creates a timer in the armed state and starts its one-shot delay.
// The context is only used for logging from the expiry callback.
func Arm(ctx context.Context, cfg Config) *Timer {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop{}
	}

	t := &Timer{
		cfg:      cfg,
		ctx:      ctx,
		state:    StateArmed,
		deadline: time.Now().Add(cfg.Delay),
	}
	t.mu.Lock()
	t.timer = time.AfterFunc(cfg.Delay, t.Fire)
	t.mu.Unlock()

	return t
}

// State returns the current lifecycle state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

// Deadline returns when the one-shot delay expires.
func (t *Timer) Deadline() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.deadline
}

// Fire runs the expiry evaluation. The one-shot delay calls it exactly once;
// calling it directly simulates a refire on an already-fired instance, which
// is the only way to exercise the re-arm branch after an above-threshold
// firing left the interrupt disabled.
func (t *Timer) Fire() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.mu.Unlock()

	// StateFired only becomes visible once the evaluation below has run.
	defer func() {
		t.mu.Lock()
		t.state = StateFired
		t.mu.Unlock()
	}()

	logger.Debug(t.ctx, "Debounce timer fired")

	// The flag drops before the threshold check, so the alert indicator can
	// read clear for a moment even when the condition persists. Inherited
	// behavior, kept as is.
	t.cfg.Alert.SetActive(false)

	temperature := t.cfg.Temperature.LatestTemperature()
	if temperature >= t.cfg.Threshold {
		// Still hot: the interrupt stays disabled and the flag stays clear
		// until a later refire observes a value below the threshold.
		logger.WarnKV(t.ctx, "Temperature still above threshold, interrupt stays disabled",
			"temperature", temperature,
			"threshold", t.cfg.Threshold)
		t.cfg.Metrics.DebounceFired(false)

		return
	}

	t.cfg.Sensor.ClearAlert(false)
	t.cfg.Alert.SetActive(false)
	t.cfg.Interrupts.Enable()

	logger.DebugKV(t.ctx, "Alert cleared, interrupt re-armed", "temperature", temperature)
	t.cfg.Metrics.DebounceFired(true)
}

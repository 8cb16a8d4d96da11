package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/temp-sentinel/internal/config"
	"github.com/oshokin/temp-sentinel/internal/debounce"
)

// fastConfig shrinks every period so scenarios complete quickly.
func fastConfig(cfg *config.Config) {
	cfg.RenderPeriod = 2 * time.Millisecond
	cfg.SensorPollPeriod = 2 * time.Millisecond
	cfg.DebounceDelay = 25 * time.Millisecond
}

// TestRunStartsTasksAndStopsOnCancel verifies a full start produces frames
// and that cancellation winds everything down.
func TestRunStartsTasksAndStopsOnCancel(t *testing.T) {
	t.Parallel()

	r := newRig(t, fastConfig)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.ctrl.Run(ctx) }()

	require.Eventually(t, func() bool {
		return r.display.DrawCount() > 2
	}, time.Second, time.Millisecond)

	// Sensor present, so the interrupt line came up armed.
	require.True(t, r.ctrl.state.SensorPresent())
	require.True(t, r.line.Enabled())
	require.Equal(t, config.DefaultDisplayBrightness, r.display.Brightness())

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("controller did not stop")
	}
}

// TestRunWithAbsentSensorSkipsInterrupt verifies a failed probe disables the
// alert path for the whole boot while the other tasks keep running.
func TestRunWithAbsentSensorSkipsInterrupt(t *testing.T) {
	t.Parallel()

	r := newRig(t, fastConfig)
	r.sensor.SetPresent(false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- r.ctrl.Run(ctx) }()

	require.Eventually(t, func() bool {
		return r.display.DrawCount() > 2
	}, time.Second, time.Millisecond)

	require.False(t, r.ctrl.state.SensorPresent())
	require.False(t, r.line.Enabled())

	cancel()
	require.NoError(t, <-done)
}

// TestEmptyTaskSetBlinksAndFails verifies the blink-of-death fallback: five
// visible blinks, then a hard error.
func TestEmptyTaskSetBlinksAndFails(t *testing.T) {
	t.Parallel()

	r := newRig(t, nil)

	err := r.ctrl.runTasks(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoRunnableTasks)

	history := r.heartbeat.History()
	require.Len(t, history, 10)

	for i, on := range history {
		require.Equal(t, i%2 == 0, on)
	}
}

// TestAlertScenarioBelowThreshold walks the happy path from spec of record:
// a 20°C reading, an externally triggered alert, debounce expiry, then a
// cleared flag and a re-armed interrupt.
func TestAlertScenarioBelowThreshold(t *testing.T) {
	t.Parallel()

	r := newRig(t, fastConfig)
	r.sensor.SetTemperature(20.0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- r.ctrl.Run(ctx) }()

	require.Eventually(t, func() bool {
		return r.line.Enabled()
	}, time.Second, time.Millisecond)

	// The alert pin goes low without the reading changing.
	r.line.Assert()

	// Bridge disabled the line; the alert task raised the flag and the
	// blink-coupled alert LED follows.
	require.Eventually(t, func() bool {
		return r.ctrl.state.AlertActive()
	}, time.Second, time.Millisecond)
	require.False(t, r.line.Enabled())

	require.Eventually(t, func() bool {
		return r.alert.IsOn()
	}, time.Second, time.Millisecond)

	// After the debounce delay the reading is below threshold: flag clear,
	// interrupt re-armed.
	require.Eventually(t, func() bool {
		return r.line.Enabled() && !r.ctrl.state.AlertActive()
	}, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

// TestAlertScenarioAboveThreshold walks the documented gap: at 30°C the
// firing clears the flag but leaves the interrupt disabled, and only a
// simulated refire after cooldown re-arms it.
func TestAlertScenarioAboveThreshold(t *testing.T) {
	t.Parallel()

	r := newRig(t, fastConfig)
	r.sensor.SetTemperature(20.0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- r.ctrl.Run(ctx) }()

	require.Eventually(t, func() bool {
		return r.line.Enabled()
	}, time.Second, time.Millisecond)

	// Crossing the threshold latches the sensor alert and triggers the line.
	r.sensor.SetTemperature(30.0)

	require.Eventually(t, func() bool {
		timer := r.ctrl.LastTimer()

		return timer != nil && timer.State() == debounce.StateFired
	}, time.Second, time.Millisecond)

	// The gap: flag reads clear, interrupt stays suppressed, latch stays set.
	require.False(t, r.ctrl.state.AlertActive())
	require.False(t, r.line.Enabled())
	require.True(t, r.sensor.Latched())

	// No new timer can appear while the interrupt is disabled; a direct
	// refire after cooldown is the only way out.
	r.sensor.SetTemperature(20.0)

	require.Eventually(t, func() bool {
		return r.ctrl.state.LatestTemperature() == 20.0
	}, time.Second, time.Millisecond)

	r.ctrl.LastTimer().Fire()

	require.True(t, r.line.Enabled())
	require.False(t, r.sensor.Latched())

	cancel()
	require.NoError(t, <-done)
}

package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/temp-sentinel/internal/config"
	"github.com/oshokin/temp-sentinel/internal/debounce"
	"github.com/oshokin/temp-sentinel/internal/domain/signal"
	"github.com/oshokin/temp-sentinel/internal/hardware"
	"github.com/oshokin/temp-sentinel/internal/irq"
)

// rig bundles a controller with its simulated hardware for inspection.
type rig struct {
	ctrl      *Controller
	sensor    *hardware.SimSensor
	display   *hardware.SimDisplay
	heartbeat *hardware.SimLED
	mirror    *hardware.SimLED
	alert     *hardware.SimLED
	line      *irq.Line
}

// newRig builds a controller over simulated hardware. mutate may be nil.
func newRig(t *testing.T, mutate func(*config.Config)) *rig {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}

	require.NoError(t, config.Validate(cfg))

	r := &rig{
		sensor:    hardware.NewSimSensor(cfg.TemperatureThreshold),
		display:   hardware.NewSimDisplay(),
		heartbeat: hardware.NewSimLED(),
		mirror:    hardware.NewSimLED(),
		alert:     hardware.NewSimLED(),
		line:      irq.NewLine(alertSensePin, irq.LevelLow),
	}
	r.sensor.AttachAlertPin(r.line)

	r.ctrl = New(cfg, Deps{
		Sensor:       r.sensor,
		Display:      r.display,
		HeartbeatLED: r.heartbeat,
		MirrorLED:    r.mirror,
		AlertLED:     r.alert,
		Line:         r.line,
	})

	return r
}

// TestRenderStepPhases verifies phase A renders the counter with the
// heartbeat lit and a LOWER token, phase B renders the temperature with the
// heartbeat dark and a RAISE token.
func TestRenderStepPhases(t *testing.T) {
	t.Parallel()

	r := newRig(t, nil)
	r.ctrl.temps.Store(21.5)

	count := r.ctrl.renderStep(-1, true)
	require.Equal(t, 0, count)
	require.True(t, r.heartbeat.IsOn())
	require.Equal(t, "0000", r.display.Frame())

	token, err := r.ctrl.mirrorQueue.Receive(context.Background())
	require.NoError(t, err)
	require.Equal(t, signal.FlashLower, token)

	count = r.ctrl.renderStep(count, false)
	require.Equal(t, 0, count)
	require.False(t, r.heartbeat.IsOn())
	require.Equal(t, "21.5c", r.display.Frame())

	token, err = r.ctrl.mirrorQueue.Receive(context.Background())
	require.NoError(t, err)
	require.Equal(t, signal.FlashRaise, token)
}

// TestRenderCounterWraps verifies 9999 is followed by 0, never anything
// above 9999.
func TestRenderCounterWraps(t *testing.T) {
	t.Parallel()

	r := newRig(t, nil)

	count := r.ctrl.renderStep(9998, true)
	require.Equal(t, 9999, count)
	require.Equal(t, "9999", r.display.Frame())

	count = r.ctrl.renderStep(count, true)
	require.Equal(t, 0, count)
	require.Equal(t, "0000", r.display.Frame())
}

// TestMirrorStepMapsTokens verifies RAISE maps to on and LOWER to off, and
// that the alert LED refreshes in the same step.
func TestMirrorStepMapsTokens(t *testing.T) {
	t.Parallel()

	r := newRig(t, nil)
	ctx := context.Background()

	r.ctrl.mirrorStep(ctx, signal.FlashRaise)
	require.True(t, r.mirror.IsOn())
	require.False(t, r.alert.IsOn())

	// The alert LED only moves when a token arrives.
	r.ctrl.alerts.SetActive(true)
	require.False(t, r.alert.IsOn())

	r.ctrl.mirrorStep(ctx, signal.FlashLower)
	require.False(t, r.mirror.IsOn())
	require.True(t, r.alert.IsOn())
}

// TestMirrorLoopFIFO verifies delivered tokens drive the mirror LED in
// arrival order.
func TestMirrorLoopFIFO(t *testing.T) {
	t.Parallel()

	r := newRig(t, nil)

	tokens := []signal.FlashToken{signal.FlashRaise, signal.FlashLower, signal.FlashRaise}
	for _, token := range tokens {
		require.True(t, r.ctrl.mirrorQueue.TrySend(token))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go r.ctrl.mirrorLoop(ctx)

	require.Eventually(t, func() bool {
		return len(r.mirror.History()) == len(tokens)
	}, time.Second, time.Millisecond)

	require.Equal(t, []bool{true, false, true}, r.mirror.History())
}

// TestSensorLoopPublishesReadings verifies the poll task stores samples in
// the shared state.
func TestSensorLoopPublishesReadings(t *testing.T) {
	t.Parallel()

	r := newRig(t, func(cfg *config.Config) {
		cfg.SensorPollPeriod = 2 * time.Millisecond
	})
	r.sensor.SetTemperature(19.25)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go r.ctrl.sensorLoop(ctx)

	require.Eventually(t, func() bool {
		return r.ctrl.state.LatestTemperature() == 19.25
	}, time.Second, time.Millisecond)
}

// TestAlertStepRaisesAndArms verifies one consumed notification raises the
// flag and arms a fresh timer.
func TestAlertStepRaisesAndArms(t *testing.T) {
	t.Parallel()

	r := newRig(t, nil)
	require.Nil(t, r.ctrl.LastTimer())

	r.ctrl.alertStep(context.Background())

	require.True(t, r.ctrl.state.AlertActive())

	timer := r.ctrl.LastTimer()
	require.NotNil(t, timer)
	require.Equal(t, debounce.StateArmed, timer.State())

	// A second notification arms a fresh instance.
	r.ctrl.alertStep(context.Background())
	require.NotSame(t, timer, r.ctrl.LastTimer())
}

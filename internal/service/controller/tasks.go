package controller

import (
	"context"
	"time"

	"github.com/oshokin/temp-sentinel/internal/debounce"
	"github.com/oshokin/temp-sentinel/internal/domain/signal"
	"github.com/oshokin/temp-sentinel/internal/logger"
)

// counterModulus wraps the heartbeat counter: 9999 is followed by 0.
const counterModulus = 10000

// renderLoop alternates the two render phases on the configured period.
func (c *Controller) renderLoop(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.RenderPeriod)
	defer ticker.Stop()

	count := -1
	phaseA := true

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count = c.renderStep(count, phaseA)
			phaseA = !phaseA
		}
	}
}

// renderStep runs one render phase and returns the updated counter.
//
// Phase A lights the heartbeat LED, advances and renders the counter, and
// enqueues a LOWER token; phase B darkens the LED, renders the latest
// temperature and enqueues a RAISE token. The token is deliberately the
// inverse of the LED state just driven; the mirror task maps the token, not
// this task's indicator.
func (c *Controller) renderStep(count int, phaseA bool) int {
	var token signal.FlashToken

	if phaseA {
		c.deps.HeartbeatLED.Set(true)
		count = (count + 1) % counterModulus
		c.renderer.ShowCount(count)
		token = signal.FlashLower
	} else {
		c.deps.HeartbeatLED.Set(false)
		c.renderer.ShowTemperature(c.state.LatestTemperature())
		token = signal.FlashRaise
	}

	// Best effort: a full queue drops the token and the show goes on.
	c.mirrorQueue.TrySend(token)
	c.rec.FrameRendered()

	return count
}

// mirrorLoop blocks on the mirror queue and applies each token as it lands.
func (c *Controller) mirrorLoop(ctx context.Context) {
	for {
		token, err := c.mirrorQueue.Receive(ctx)
		if err != nil {
			return
		}

		c.mirrorStep(ctx, token)
	}
}

// mirrorStep drives the mirror LED from the token, then refreshes the alert
// LED from the shared flag. The alert indicator updates only here, in the
// same iteration as a token arrival, so it rides the blink cadence rather
// than a timer of its own. Inherited coupling, kept as is.
func (c *Controller) mirrorStep(ctx context.Context, token signal.FlashToken) {
	if token == signal.FlashRaise {
		logger.Debug(ctx, "Mirror LED flash")
	}

	c.deps.MirrorLED.Set(token == signal.FlashRaise)
	c.deps.AlertLED.Set(c.state.AlertActive())
}

// sensorLoop samples the sensor on the configured period and publishes the
// reading through the temperature writer role.
func (c *Controller) sensorLoop(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.SensorPollPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.temps.Store(c.deps.Sensor.ReadTemperature())
			c.rec.SensorRead()
		}
	}
}

// alertLoop blocks on the alert queue; each notification raises the alert
// flag and arms a fresh debounce timer.
func (c *Controller) alertLoop(ctx context.Context) {
	for {
		if _, err := c.alertQueue.Receive(ctx); err != nil {
			return
		}

		c.alertStep(ctx)
	}
}

// alertStep consumes one alert notification.
func (c *Controller) alertStep(ctx context.Context) {
	logger.Debug(ctx, "Alert interrupt observed")

	c.alerts.SetActive(true)
	c.rec.AlertRaised()

	timer := debounce.Arm(ctx, debounce.Config{
		Delay:       c.cfg.DebounceDelay,
		Threshold:   c.cfg.TemperatureThreshold,
		Temperature: c.state,
		Alert:       c.alerts,
		Sensor:      c.deps.Sensor,
		Interrupts:  c.bridge,
		Metrics:     c.rec,
	})

	c.timerMu.Lock()
	c.lastTimer = timer
	c.timerMu.Unlock()
}

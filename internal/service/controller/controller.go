package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oshokin/temp-sentinel/internal/config"
	"github.com/oshokin/temp-sentinel/internal/debounce"
	"github.com/oshokin/temp-sentinel/internal/display"
	"github.com/oshokin/temp-sentinel/internal/domain/signal"
	"github.com/oshokin/temp-sentinel/internal/hardware"
	"github.com/oshokin/temp-sentinel/internal/irq"
	"github.com/oshokin/temp-sentinel/internal/logger"
	"github.com/oshokin/temp-sentinel/internal/metrics"
	"github.com/oshokin/temp-sentinel/internal/queue"
)

const (
	// blinkOfDeathCount is how many times the heartbeat LED blinks before
	// giving up on a failed start.
	blinkOfDeathCount = 5
	// blinkOfDeathPause is the on/off time of the failure blink.
	blinkOfDeathPause = 100 * time.Millisecond
)

// ErrNoRunnableTasks indicates the task set came up empty, the controller
// equivalent of a scheduler that could not start.
var ErrNoRunnableTasks = errors.New("no runnable tasks")

// Deps are the external collaborators the controller drives.
type Deps struct {
	// Sensor is the temperature sensor driver.
	Sensor hardware.Sensor
	// Display is the 4-glyph display driver.
	Display hardware.Display
	// HeartbeatLED is the onboard indicator toggled by the render task.
	HeartbeatLED hardware.LED
	// MirrorLED is the indicator driven by the mirror task from flash tokens.
	MirrorLED hardware.LED
	// AlertLED is the indicator reflecting the alert flag.
	AlertLED hardware.LED
	// Line is the interrupt line wired to the sensor's alert output.
	Line *irq.Line
	// Metrics receives event counts; nil means no recording.
	Metrics metrics.Recorder
}

// Controller owns the shared state, the queues and the task set.
type Controller struct {
	cfg      *config.Config
	deps     Deps
	state    *signal.State
	temps    signal.TemperatureWriter
	alerts   signal.AlertWriter
	renderer *display.Renderer
	// mirrorQueue carries flash tokens from the render task to the mirror task.
	mirrorQueue *queue.Queue[signal.FlashToken]
	// alertQueue carries the interrupt bridge's notification, capacity 1.
	alertQueue *queue.Queue[signal.AlertToken]
	bridge     *irq.Bridge
	rec        metrics.Recorder

	// timerMu guards lastTimer.
	timerMu sync.Mutex
	// lastTimer is the most recently armed debounce timer.
	lastTimer *debounce.Timer
}

// task is one unit of control in the task set.
type task struct {
	name string
	loop func(ctx context.Context)
}

// New wires the controller. The configuration must be validated.
func New(cfg *config.Config, deps Deps) *Controller {
	rec := deps.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}

	c := &Controller{
		cfg:      cfg,
		deps:     deps,
		state:    signal.NewState(),
		renderer: display.NewRenderer(deps.Display),
		rec:      rec,
	}
	c.temps = c.state.TemperatureWriter()
	c.alerts = c.state.AlertWriter()

	c.mirrorQueue = queue.New[signal.FlashToken](cfg.MirrorQueueCapacity, func() {
		rec.TokenDropped("mirror")
	})
	c.alertQueue = queue.New[signal.AlertToken](config.AlertQueueCapacity, func() {
		rec.TokenDropped("alert")
	})

	c.bridge = irq.NewBridge(deps.Line, queue.NewISRSender(c.alertQueue))

	return c
}

// State returns the shared signal state handle.
func (c *Controller) State() *signal.State {
	return c.state
}

// LastTimer returns the most recently armed debounce timer, or nil.
func (c *Controller) LastTimer() *debounce.Timer {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	return c.lastTimer
}

// Run performs startup and drives the task set until the context is
// canceled. A sensor that fails its probe is logged and left out of the
// interrupt path; everything else still runs.
func (c *Controller) Run(ctx context.Context) error {
	c.deps.Display.SetBrightness(c.cfg.DisplayBrightness)

	present := c.deps.Sensor.Begin()
	c.state.MarkSensorPresent(present)

	if present {
		c.bridge.Enable()
	} else {
		// Not fatal: render and mirror keep running on stale defaults.
		logger.Error(ctx, "Temperature sensor not present, alert interrupt stays disarmed")
	}

	tasks := []task{
		{name: "render", loop: c.renderLoop},
		{name: "mirror", loop: c.mirrorLoop},
		{name: "sensor-poll", loop: c.sensorLoop},
		{name: "alert", loop: c.alertLoop},
	}

	return c.runTasks(ctx, tasks)
}

// runTasks starts every task and blocks until all have returned. An empty
// task set is fatal: the heartbeat LED blinks the failure pattern and the
// controller halts.
func (c *Controller) runTasks(ctx context.Context, tasks []task) error {
	if len(tasks) == 0 {
		c.blinkOfDeath()

		return ErrNoRunnableTasks
	}

	var wg sync.WaitGroup
	for _, t := range tasks {
		t := t

		wg.Add(1)

		go func() {
			defer wg.Done()

			logger.DebugKV(ctx, "Task started", "task", t.name)
			t.loop(ctx)
			logger.DebugKV(ctx, "Task stopped", "task", t.name)
		}()
	}

	wg.Wait()

	return nil
}

// blinkOfDeath flashes the heartbeat LED a fixed number of times to make a
// failed start visible without a display.
func (c *Controller) blinkOfDeath() {
	for i := 0; i < blinkOfDeathCount; i++ {
		c.deps.HeartbeatLED.Set(true)
		time.Sleep(blinkOfDeathPause)
		c.deps.HeartbeatLED.Set(false)
		time.Sleep(blinkOfDeathPause)
	}
}

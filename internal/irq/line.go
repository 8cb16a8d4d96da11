package irq

import "sync"

// TriggerLevel is the signal level that triggers the line.
type TriggerLevel int

// Supported trigger levels.
const (
	// LevelLow triggers while the pin is held low (open-drain alert output).
	LevelLow TriggerLevel = iota
	// LevelHigh triggers while the pin is held high.
	LevelHigh
)

// Line models one level-triggered interrupt source: a pin, a trigger level,
// an enabled bit and the registered handler. The handler is re-registered on
// every SetEnabled call, mirroring the platform API
// (set_interrupt_enabled(pin, level, enabled, handler)).
//
// Level semantics: while the line is asserted, enabling it fires the handler
// immediately; asserting it while enabled fires the handler. Handlers run in
// the caller's goroutine and must be short and non-blocking.
type Line struct {
	mu sync.Mutex
	// pin is the GPIO number, informational only.
	pin uint
	// level is the trigger level, informational only.
	level TriggerLevel
	// enabled gates handler dispatch.
	enabled bool
	// asserted tracks the current signal level against the trigger level.
	asserted bool
	// handler is the registered interrupt handler.
	handler func()
}

// NewLine creates a disabled, deasserted line.
func NewLine(pin uint, level TriggerLevel) *Line {
	return &Line{
		pin:   pin,
		level: level,
	}
}

// Pin returns the GPIO number the line watches.
func (l *Line) Pin() uint {
	return l.pin
}

// SetEnabled arms or disarms the line, registering the handler either way.
// Enabling while the level is still asserted dispatches the handler at once.
func (l *Line) SetEnabled(enabled bool, handler func()) {
	l.mu.Lock()
	l.enabled = enabled
	l.handler = handler
	fire := enabled && l.asserted && handler != nil
	l.mu.Unlock()

	if fire {
		handler()
	}
}

// Enabled reports whether the line is currently armed.
func (l *Line) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.enabled
}

// Assert drives the pin to its trigger level, dispatching the handler if the
// line is armed.
func (l *Line) Assert() {
	l.mu.Lock()
	l.asserted = true

	var handler func()
	if l.enabled {
		handler = l.handler
	}
	l.mu.Unlock()

	if handler != nil {
		handler()
	}
}

// Deassert releases the pin.
func (l *Line) Deassert() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.asserted = false
}

// Asserted reports whether the pin currently sits at its trigger level.
func (l *Line) Asserted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.asserted
}

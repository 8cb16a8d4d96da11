package irq

import (
	"github.com/oshokin/temp-sentinel/internal/domain/signal"
	"github.com/oshokin/temp-sentinel/internal/queue"
)

// Bridge is the interrupt handler body for the alert pin. On a trigger it
// does exactly two things: disarm the line so the still-asserted level cannot
// refire, and hand a single alert token to the capacity-1 alert queue with a
// non-blocking send. A token already pending means the send is dropped.
//
// The bridge never re-enables the line; that is the debounce timer's job.
type Bridge struct {
	// line is the interrupt source for the sensor alert pin.
	line *Line
	// alerts is the restricted sending side of the alert queue.
	alerts queue.ISRSender[signal.AlertToken]
}

// NewBridge wires the handler to its line and alert queue. The line stays
// disarmed until Enable is called.
func NewBridge(line *Line, alerts queue.ISRSender[signal.AlertToken]) *Bridge {
	return &Bridge{
		line:   line,
		alerts: alerts,
	}
}

// Handle is the interrupt handler. It runs in interrupt context: no
// allocation, no I/O, no blocking.
func (b *Bridge) Handle() {
	b.line.SetEnabled(false, b.Handle)
	b.alerts.TrySend(signal.AlertRaised)
}

// Enable arms the line with the bridge handler. Called at startup (when the
// sensor is present) and from the debounce-timer path on re-arm.
func (b *Bridge) Enable() {
	b.line.SetEnabled(true, b.Handle)
}

// Enabled reports whether the line is currently armed.
func (b *Bridge) Enabled() bool {
	return b.line.Enabled()
}

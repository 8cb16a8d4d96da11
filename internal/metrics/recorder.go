package metrics

// Recorder receives counts of the controller's notable events. All methods
// must be cheap and non-blocking; some are called on hot paths, including
// drop hooks that may run in interrupt context.
type Recorder interface {
	// TokenDropped counts a best-effort send discarded by a full queue.
	TokenDropped(queueName string)
	// AlertRaised counts an alert token consumed by the alert task.
	AlertRaised()
	// DebounceFired counts a debounce-timer firing; rearmed reports whether
	// the interrupt was re-enabled by that firing.
	DebounceFired(rearmed bool)
	// SensorRead counts one sensor-poll sample.
	SensorRead()
	// FrameRendered counts one render-task display frame.
	FrameRendered()
}

// Nop is a Recorder that discards everything.
type Nop struct{}

// TokenDropped implements Recorder.
func (Nop) TokenDropped(string) {}

// AlertRaised implements Recorder.
func (Nop) AlertRaised() {}

// DebounceFired implements Recorder.
func (Nop) DebounceFired(bool) {}

// SensorRead implements Recorder.
func (Nop) SensorRead() {}

// FrameRendered implements Recorder.
func (Nop) FrameRendered() {}

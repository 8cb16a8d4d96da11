package hardware

import (
	"strings"
	"sync"
)

// AlertPin is the sliver of the interrupt line a simulated sensor needs:
// driving its open-drain alert output low (assert) or releasing it.
type AlertPin interface {
	Assert()
	Deassert()
}

// SimSensor is an in-memory temperature sensor with the same latch behavior
// as the real part: once the temperature reaches the upper limit, the alert
// output is asserted and stays asserted until ClearAlert is called.
type SimSensor struct {
	mu sync.Mutex
	// present is the value Begin reports.
	present bool
	// upperLimit is the alert threshold in Celsius.
	upperLimit float64
	// temperature is the current simulated reading.
	temperature float64
	// latched is true while the alert output is asserted.
	latched bool
	// alertPin is driven on latch transitions; may be nil.
	alertPin AlertPin
}

// NewSimSensor creates a present sensor with the given alert threshold.
func NewSimSensor(upperLimit float64) *SimSensor {
	return &SimSensor{
		present:    true,
		upperLimit: upperLimit,
	}
}

// SetPresent controls what Begin reports; used to simulate a missing device.
func (s *SimSensor) SetPresent(present bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.present = present
}

// AttachAlertPin wires the sensor's alert output to an interrupt line.
func (s *SimSensor) AttachAlertPin(pin AlertPin) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alertPin = pin
}

// SetTemperature updates the simulated reading and, when the value is at or
// above the upper limit and no alert is latched yet, latches and asserts the
// alert output.
func (s *SimSensor) SetTemperature(celsius float64) {
	s.mu.Lock()
	s.temperature = celsius

	var pin AlertPin
	if celsius >= s.upperLimit && !s.latched {
		s.latched = true
		pin = s.alertPin
	}
	s.mu.Unlock()

	if pin != nil {
		pin.Assert()
	}
}

// Begin reports device presence.
func (s *SimSensor) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.present
}

// ReadTemperature returns the current simulated reading.
func (s *SimSensor) ReadTemperature() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.temperature
}

// ClearAlert drops the latch and releases the alert output.
func (s *SimSensor) ClearAlert(assert bool) {
	s.mu.Lock()
	s.latched = assert
	pin := s.alertPin
	s.mu.Unlock()

	if pin != nil && !assert {
		pin.Deassert()
	}
}

// Latched reports whether the alert output is currently latched.
func (s *SimSensor) Latched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.latched
}

// glyph is one display position: a character plus its decimal point.
type glyph struct {
	char  byte
	point bool
}

// SimDisplay is an in-memory 4-glyph display whose last drawn frame can be
// inspected by tests.
type SimDisplay struct {
	mu sync.Mutex
	// buffer is the frame under construction.
	buffer [4]glyph
	// drawn is the last frame pushed by Draw.
	drawn [4]glyph
	// drawCount counts Draw calls.
	drawCount int
	// brightness is the last level set.
	brightness int
}

// NewSimDisplay creates a blank simulated display.
func NewSimDisplay() *SimDisplay {
	d := new(SimDisplay)
	d.Clear()
	d.drawn = d.buffer

	return d
}

// Clear blanks the frame buffer.
func (d *SimDisplay) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.buffer {
		d.buffer[i] = glyph{char: ' '}
	}
}

// SetNumber places a decimal digit.
func (d *SimDisplay) SetNumber(digit, position int, hasPoint bool) {
	d.SetAlpha('0'+byte(digit), position, hasPoint)
}

// SetAlpha places a character glyph.
func (d *SimDisplay) SetAlpha(char byte, position int, hasPoint bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if position < 0 || position >= len(d.buffer) {
		return
	}

	d.buffer[position] = glyph{char: char, point: hasPoint}
}

// Draw publishes the frame buffer.
func (d *SimDisplay) Draw() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.drawn = d.buffer
	d.drawCount++
}

// SetBrightness records the brightness level.
func (d *SimDisplay) SetBrightness(level int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.brightness = level
}

// Brightness returns the last level set.
func (d *SimDisplay) Brightness() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.brightness
}

// DrawCount returns how many frames have been drawn.
func (d *SimDisplay) DrawCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.drawCount
}

// Frame renders the last drawn frame as text, decimal points inline,
// e.g. "20.0c".
func (d *SimDisplay) Frame() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var b strings.Builder
	for _, g := range d.drawn {
		b.WriteByte(g.char)

		if g.point {
			b.WriteByte('.')
		}
	}

	return b.String()
}

// SimLED is an in-memory indicator.
type SimLED struct {
	mu sync.Mutex
	on bool
	// history records every state driven, in order.
	history []bool
}

// NewSimLED creates an indicator in the off state.
func NewSimLED() *SimLED {
	return new(SimLED)
}

// Set drives the indicator and records the transition.
func (l *SimLED) Set(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.on = on
	l.history = append(l.history, on)
}

// IsOn reports the current state.
func (l *SimLED) IsOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.on
}

// History returns a copy of every state driven so far.
func (l *SimLED) History() []bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]bool, len(l.history))
	copy(out, l.history)

	return out
}

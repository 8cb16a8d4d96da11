package hardware

// Sensor is the temperature sensor driver contract.
type Sensor interface {
	// Begin probes the device and reports whether it is present.
	// Called once at startup.
	Begin() bool
	// ReadTemperature samples the current temperature in Celsius.
	// It may block on bus I/O; called only from the sensor-poll task.
	ReadTemperature() float64
	// ClearAlert resets the device's internal alert latch. The flag selects
	// whether the alert output stays asserted afterwards; the controller
	// always passes false. Called only from the debounce-timer path.
	ClearAlert(assert bool)
}

// Display is the 4-glyph numeric/alphanumeric display contract. A frame is
// always produced as clear, up to four glyph writes, then draw.
type Display interface {
	// Clear blanks the frame buffer without redrawing.
	Clear()
	// SetNumber places a single decimal digit (0-9) at a position (0-3).
	SetNumber(digit, position int, hasPoint bool)
	// SetAlpha places a character glyph at a position (0-3).
	SetAlpha(char byte, position int, hasPoint bool)
	// Draw pushes the frame buffer to the device.
	Draw()
	// SetBrightness sets the display brightness (0-15).
	SetBrightness(level int)
}

// LED is a single binary indicator.
type LED interface {
	// Set drives the indicator on or off.
	Set(on bool)
}

// Package display renders the controller's two frame kinds onto the 4-glyph
// display: the heartbeat counter and the latest temperature.
package display

import (
	"strconv"

	"github.com/oshokin/temp-sentinel/internal/hardware"
)

// glyphCount is the display width.
const glyphCount = 4

// maxCount is the largest value the counter frame can show.
const maxCount = 9999

// Renderer produces display frames. Every frame follows the same discipline:
// clear, set up to four glyph positions, draw.
type Renderer struct {
	display hardware.Display
}

// NewRenderer wraps a display driver.
func NewRenderer(d hardware.Display) *Renderer {
	return &Renderer{display: d}
}

// ShowCount renders a decimal counter, clamped to 0..9999, one digit per
// position with leading zeros.
func (r *Renderer) ShowCount(value int) {
	if value < 0 || value > maxCount {
		value = maxCount
	}

	r.display.Clear()
	r.display.SetNumber(value/1000%10, 0, false)
	r.display.SetNumber(value/100%10, 1, false)
	r.display.SetNumber(value/10%10, 2, false)
	r.display.SetNumber(value%10, 3, false)
	r.display.Draw()
}

// ShowTemperature renders a temperature fixed to two decimal places, folded
// into the first three positions. The decimal point rides on the glyph it
// follows rather than taking a position of its own, and position 3 always
// carries the unit glyph.
func (r *Renderer) ShowTemperature(celsius float64) {
	text := strconv.FormatFloat(celsius, 'f', 2, 64)

	r.display.Clear()

	position := 0
	for i := 0; i < len(text) && position < glyphCount-1; i++ {
		char := text[i]
		if char == '.' && position > 0 {
			r.display.SetAlpha(text[i-1], position-1, true)

			continue
		}

		r.display.SetAlpha(char, position, false)
		position++
	}

	r.display.SetAlpha('c', glyphCount-1, false)
	r.display.Draw()
}

package signal

// FlashToken is the single-byte value carried by the mirror queue from the
// render task to the mirror task. Its value is deliberately the inverse of
// the heartbeat LED state at send time; consumers must map the token itself,
// not the producer's indicator.
type FlashToken byte

// FlashToken variants.
const (
	// FlashLower asks the mirror indicator to go dark.
	FlashLower FlashToken = 0
	// FlashRaise asks the mirror indicator to light up.
	FlashRaise FlashToken = 1
)

// String returns a short human-readable name for logs.
func (t FlashToken) String() string {
	if t == FlashRaise {
		return "raise"
	}

	return "lower"
}

// AlertToken is the single-byte marker the interrupt bridge hands to the
// alert queue, at most one occurrence in flight.
type AlertToken byte

// AlertRaised is the only AlertToken variant.
const AlertRaised AlertToken = 1

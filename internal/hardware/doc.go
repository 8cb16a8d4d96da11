// Package hardware defines the narrow interfaces of the external
// collaborators the controller drives (temperature sensor, 4-glyph display,
// indicator LEDs) together with simulated implementations used host-side and
// in tests. The real drivers are simple I/O wrappers behind the same
// interfaces.
package hardware

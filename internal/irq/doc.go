// Package irq models the platform interrupt line for the sensor's alert pin
// and the minimal handler that turns a hardware trigger into a queued
// notification.
//
// The line is the single choke point for arming and disarming the interrupt:
// the bridge disables it from handler context, and only the debounce-timer
// path ever re-enables it.
package irq

// Package controller hosts the coordination core of the temperature
// monitor: the four cooperating tasks (render, mirror, sensor-poll, alert),
// the bounded queues between them, the interrupt bridge and the debounce
// timer it ultimately arms.
package controller

// Package telemetry exposes the controller's observability surface over
// HTTP: a health probe, a JSON snapshot of the shared signal state and the
// Prometheus metrics endpoint.
package telemetry

// Package metrics defines the controller's instrumentation points and a
// Prometheus-backed recorder for them. A no-op recorder is used when
// telemetry is disabled.
package metrics

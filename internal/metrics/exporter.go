package metrics

import (
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Exporter is a Recorder backed by Prometheus collectors.
type Exporter struct {
	tokensDroppedTotal *prom.CounterVec
	alertsRaisedTotal  prom.Counter
	debounceFiredTotal *prom.CounterVec
	sensorReadsTotal   prom.Counter
	framesTotal        prom.Counter
}

var _ Recorder = (*Exporter)(nil)

// NewExporter creates and registers the controller's collectors.
// A nil registerer falls back to the default registry.
func NewExporter(namespace string, reg prom.Registerer) (*Exporter, error) {
	if namespace == "" {
		namespace = "tempsentinel"
	}

	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	e := &Exporter{
		tokensDroppedTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_dropped_total",
			Help:      "Tokens discarded by full bounded queues.",
		}, []string{"queue"}),
		alertsRaisedTotal: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_raised_total",
			Help:      "Alert tokens consumed by the alert task.",
		}),
		debounceFiredTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "debounce_fired_total",
			Help:      "Debounce timer firings by outcome.",
		}, []string{"outcome"}),
		sensorReadsTotal: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sensor_reads_total",
			Help:      "Temperature samples taken by the sensor-poll task.",
		}),
		framesTotal: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "frames_rendered_total",
			Help:      "Display frames produced by the render task.",
		}),
	}

	collectors := []prom.Collector{
		e.tokensDroppedTotal,
		e.alertsRaisedTotal,
		e.debounceFiredTotal,
		e.sensorReadsTotal,
		e.framesTotal,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	return e, nil
}

// TokenDropped implements Recorder.
func (e *Exporter) TokenDropped(queueName string) {
	e.tokensDroppedTotal.WithLabelValues(queueName).Inc()
}

// AlertRaised implements Recorder.
func (e *Exporter) AlertRaised() {
	e.alertsRaisedTotal.Inc()
}

// DebounceFired implements Recorder.
func (e *Exporter) DebounceFired(rearmed bool) {
	outcome := "suppressed"
	if rearmed {
		outcome = "rearmed"
	}

	e.debounceFiredTotal.WithLabelValues(outcome).Inc()
}

// SensorRead implements Recorder.
func (e *Exporter) SensorRead() {
	e.sensorReadsTotal.Inc()
}

// FrameRendered implements Recorder.
func (e *Exporter) FrameRendered() {
	e.framesTotal.Inc()
}

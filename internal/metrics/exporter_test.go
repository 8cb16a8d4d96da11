package metrics

import (
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// TestExporterCounters verifies each Recorder method moves its collector.
func TestExporterCounters(t *testing.T) {
	t.Parallel()

	reg := prom.NewRegistry()

	e, err := NewExporter("test", reg)
	require.NoError(t, err)

	e.TokenDropped("mirror")
	e.TokenDropped("mirror")
	e.AlertRaised()
	e.DebounceFired(true)
	e.DebounceFired(false)
	e.SensorRead()
	e.FrameRendered()

	require.InDelta(t, 2.0, testutil.ToFloat64(e.tokensDroppedTotal.WithLabelValues("mirror")), 0.001)
	require.InDelta(t, 1.0, testutil.ToFloat64(e.alertsRaisedTotal), 0.001)
	require.InDelta(t, 1.0, testutil.ToFloat64(e.debounceFiredTotal.WithLabelValues("rearmed")), 0.001)
	require.InDelta(t, 1.0, testutil.ToFloat64(e.debounceFiredTotal.WithLabelValues("suppressed")), 0.001)
	require.InDelta(t, 1.0, testutil.ToFloat64(e.sensorReadsTotal), 0.001)
	require.InDelta(t, 1.0, testutil.ToFloat64(e.framesTotal), 0.001)
}

// TestDoubleRegistrationFails verifies a second exporter on the same
// registry surfaces the registration error.
func TestDoubleRegistrationFails(t *testing.T) {
	t.Parallel()

	reg := prom.NewRegistry()

	_, err := NewExporter("test", reg)
	require.NoError(t, err)

	_, err = NewExporter("test", reg)
	require.Error(t, err)
}

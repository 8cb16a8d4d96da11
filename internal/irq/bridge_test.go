package irq

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/temp-sentinel/internal/domain/signal"
	"github.com/oshokin/temp-sentinel/internal/queue"
)

func newTestBridge(onDrop func()) (*Bridge, *Line, *queue.Queue[signal.AlertToken]) {
	line := NewLine(4, LevelLow)
	alerts := queue.New[signal.AlertToken](1, onDrop)
	bridge := NewBridge(line, queue.NewISRSender(alerts))

	return bridge, line, alerts
}

// TestHandleDisablesAndNotifies verifies the handler's two side effects:
// the line is disarmed and one token lands on the alert queue.
func TestHandleDisablesAndNotifies(t *testing.T) {
	t.Parallel()

	bridge, line, alerts := newTestBridge(nil)
	bridge.Enable()
	require.True(t, line.Enabled())

	line.Assert()

	require.False(t, line.Enabled())
	require.Equal(t, 1, alerts.Len())

	token, err := alerts.Receive(context.Background())
	require.NoError(t, err)
	require.Equal(t, signal.AlertRaised, token)
}

// TestAssertWhileDisabledDoesNothing verifies a trigger against a disarmed
// line leaves no trace.
func TestAssertWhileDisabledDoesNothing(t *testing.T) {
	t.Parallel()

	_, line, alerts := newTestBridge(nil)

	line.Assert()

	require.False(t, line.Enabled())
	require.Equal(t, 0, alerts.Len())
}

// TestPendingTokenDropsSecondTrigger verifies at most one alert is in
// flight: re-arming while a token is pending fires again (level still
// asserted) but the second send is dropped.
func TestPendingTokenDropsSecondTrigger(t *testing.T) {
	t.Parallel()

	var dropped int

	bridge, line, alerts := newTestBridge(func() { dropped++ })
	bridge.Enable()

	line.Assert()
	require.Equal(t, 1, alerts.Len())

	// Level never released; re-enabling fires the handler immediately.
	bridge.Enable()

	require.False(t, line.Enabled())
	require.Equal(t, 1, alerts.Len())
	require.Equal(t, 1, dropped)
}

// TestEnableWhileDeassertedWaitsForLevel verifies an armed line stays quiet
// until the level actually arrives.
func TestEnableWhileDeassertedWaitsForLevel(t *testing.T) {
	t.Parallel()

	bridge, line, alerts := newTestBridge(nil)
	bridge.Enable()

	require.True(t, line.Enabled())
	require.Equal(t, 0, alerts.Len())

	line.Assert()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	token, err := alerts.Receive(ctx)
	require.NoError(t, err)
	require.Equal(t, signal.AlertRaised, token)
}

package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liftoff/internal/config/logger"
)

func Test_Metrics_StateGauge(t *testing.T) {
	m := NewMetrics(logger.NewNop())

	m.SetState("idle")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.state.WithLabelValues("idle")))

	m.SetState("launch")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.state.WithLabelValues("launch")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.state.WithLabelValues("idle")))
}

func Test_Metrics_Counters(t *testing.T) {
	m := NewMetrics(logger.NewNop())

	m.FrameSent("SERVICE")
	m.FrameSent("SERVICE")
	m.FrameReceived("FEED")
	m.Retry()
	m.Abort()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.framesSent.WithLabelValues("SERVICE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.framesReceived.WithLabelValues("FEED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.retries))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aborts))
}

func Test_Metrics_RegistersCollectors(t *testing.T) {
	m := NewMetrics(logger.NewNop())

	// Labelled vectors without observations gather empty; the state
	// gauge appears once set.
	m.SetState("idle")

	families, err := m.registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}

	assert.Contains(t, names, "liftoff_mission_state")
}

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cshekharsharma/movetree/metrics"
)

func TestRecorder_ObserveAppliedAndDiscarded_UpdateBalance(t *testing.T) {
	recorder := metrics.NewRecorder("replica-a")

	recorder.ObserveApplied()
	recorder.ObserveApplied()
	recorder.ObserveDiscarded("cycle")

	assert.Equal(t, 2, recorder.Balance().Applied())
	assert.Equal(t, 1, recorder.Balance().Discarded())
}

func TestRecorder_CollectorsRegisterWithoutError(t *testing.T) {
	recorder := metrics.NewRecorder("replica-a")
	registry := prometheus.NewRegistry()
	for _, c := range recorder.Collectors() {
		require.NoError(t, registry.Register(c))
	}
}

func TestRecorder_ObserveAppliedExportsMetric(t *testing.T) {
	recorder := metrics.NewRecorder("replica-b")
	recorder.ObserveApplied()

	metricCh := make(chan prometheus.Metric, 16)
	for _, c := range recorder.Collectors() {
		c.Collect(metricCh)
	}
	close(metricCh)

	found := false
	for m := range metricCh {
		var out dto.Metric
		require.NoError(t, m.Write(&out))
		if out.GetCounter() != nil && out.GetCounter().GetValue() == 1 {
			found = true
		}
	}
	assert.True(t, found, "expected to find the applied counter at value 1")
}

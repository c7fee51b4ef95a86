package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	require.NoError(t, Register(reg))
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(predictionsTotal)
	ObservePredictions(15)
	assert.Equal(t, before+15, testutil.ToFloat64(predictionsTotal))

	beforeCritical := testutil.ToFloat64(alertsTotal.WithLabelValues("critical"))
	ObserveAlert("critical")
	assert.Equal(t, beforeCritical+1, testutil.ToFloat64(alertsTotal.WithLabelValues("critical")))

	beforeFailures := testutil.ToFloat64(persistFailuresTotal.WithLabelValues("insert_reading"))
	ObservePersistFailure("insert_reading")
	assert.Equal(t, beforeFailures+1, testutil.ToFloat64(persistFailuresTotal.WithLabelValues("insert_reading")))
}

func TestSetModelSource(t *testing.T) {
	SetModelSource("fallback")
	assert.Equal(t, 1.0, testutil.ToFloat64(modelSource.WithLabelValues("fallback")))
	assert.Equal(t, 0.0, testutil.ToFloat64(modelSource.WithLabelValues("loaded")))

	SetModelSource("loaded")
	assert.Equal(t, 0.0, testutil.ToFloat64(modelSource.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(modelSource.WithLabelValues("loaded")))
}

func TestObserveTraining(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))

	before := &dto.Metric{}
	require.NoError(t, trainingDurationSeconds.Write(before))

	ObserveTraining(1500 * time.Millisecond)
	ObserveTraining(-time.Second)

	after := &dto.Metric{}
	require.NoError(t, trainingDurationSeconds.Write(after))

	assert.Equal(t, 1, testutil.CollectAndCount(trainingDurationSeconds))
	assert.Equal(t, before.GetHistogram().GetSampleCount()+2, after.GetHistogram().GetSampleCount())
	assert.InDelta(t, before.GetHistogram().GetSampleSum()+1.5, after.GetHistogram().GetSampleSum(), 1e-9)
}

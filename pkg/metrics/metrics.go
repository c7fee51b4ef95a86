// Package metrics holds the Prometheus collectors of the scoring pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pdm"

var (
	predictionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Total number of prediction records scored.",
		},
	)

	alertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_total",
			Help:      "Total number of alerts derived from live or stored predictions, partitioned by severity.",
		},
		[]string{"severity"},
	)

	persistFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Persistence failures that did not fail the scoring call, partitioned by store operation.",
		},
		[]string{"op"},
	)

	modelSource = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_source",
			Help:      "1 for the source of the classifier currently serving, 0 otherwise.",
		},
		[]string{"source"},
	)

	trainingDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "training_seconds",
			Help:      "Classifier training latency in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)
)

var modelSources = []string{"loaded", "trained", "fallback"}

// Register attaches the pipeline collectors to the supplied registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		predictionsTotal,
		alertsTotal,
		persistFailuresTotal,
		modelSource,
		trainingDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

func ObservePredictions(n int) {
	predictionsTotal.Add(float64(n))
}

func ObserveAlert(severity string) {
	alertsTotal.WithLabelValues(severity).Inc()
}

func ObservePersistFailure(op string) {
	persistFailuresTotal.WithLabelValues(op).Inc()
}

// SetModelSource flips the gauge so exactly one source reads 1.
func SetModelSource(source string) {
	for _, s := range modelSources {
		v := 0.0
		if s == source {
			v = 1
		}
		modelSource.WithLabelValues(s).Set(v)
	}
}

func ObserveTraining(duration time.Duration) {
	if duration < 0 {
		duration = 0
	}
	trainingDurationSeconds.Observe(duration.Seconds())
}

// PersistFailures exposes the counter for one store operation.
func PersistFailures(op string) prometheus.Counter {
	return persistFailuresTotal.WithLabelValues(op)
}

// Alerts exposes the counter for one severity.
func Alerts(severity string) prometheus.Counter {
	return alertsTotal.WithLabelValues(severity)
}

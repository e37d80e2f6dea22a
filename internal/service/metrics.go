package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the prometheus collectors exported by the services
type Metrics struct {
	Predictions      *prometheus.CounterVec
	Classifications  *prometheus.CounterVec
	TrainingDuration prometheus.Histogram
	TrainingFailures prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agriempower",
			Name:      "fertility_predictions_total",
			Help:      "Fertility predictions served, by predicted label.",
		}, []string{"fertility"}),
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agriempower",
			Name:      "image_classifications_total",
			Help:      "Crop images classified, by condition.",
		}, []string{"condition"}),
		TrainingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agriempower",
			Name:      "model_training_seconds",
			Help:      "Time spent fitting the fertility forest.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		TrainingFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agriempower",
			Name:      "model_training_failures_total",
			Help:      "Fertility model fits that returned an error.",
		}),
	}
	reg.MustRegister(m.Predictions, m.Classifications, m.TrainingDuration, m.TrainingFailures)
	return m
}

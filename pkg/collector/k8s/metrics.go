package k8s

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	listDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kubenum_list_duration_seconds",
			Help:    "Time taken by a single list call, by resource type",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"type"},
	)

	listErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubenum_list_errors_total",
			Help: "Total number of failed list calls, by resource type",
		},
		[]string{"type"},
	)

	objectCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kubenum_objects",
			Help: "Number of objects in the last collected snapshot, by resource type",
		},
		[]string{"type"},
	)
)

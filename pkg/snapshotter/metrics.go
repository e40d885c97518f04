package snapshotter

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Dump metrics
	dumpDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kubenum_dump_duration_seconds",
			Help:    "Time taken to collect and write a complete cluster snapshot",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	dumpTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubenum_dump_total",
			Help: "Total number of dump attempts",
		},
		[]string{"status"}, // success, error or timeout
	)

	dumpObjects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kubenum_dump_objects",
			Help: "Number of objects in the last written snapshot",
		},
	)
)

// WriteMetrics writes all registered metrics to path in the node-exporter
// textfile format.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	return nil
}

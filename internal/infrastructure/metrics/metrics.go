// Package metrics defines prometheus collectors for dataset generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	datasetsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pmp_datasets_generated_total",
			Help: "Total number of datasets generated by output format.",
		},
		[]string{"format"},
	)

	samplesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pmp_samples_generated_total",
			Help: "Total number of samples generated by movement category.",
		},
		[]string{"category"},
	)

	generationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pmp_generation_duration_seconds",
			Help:    "Time taken to generate, encode and store a dataset.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	generationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pmp_generation_failures_total",
			Help: "Total number of failed generation requests by stage.",
		},
		[]string{"stage"}, // stage: spec, build, encode, store, persist
	)

	artifactBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pmp_artifact_bytes_total",
			Help: "Total bytes of dataset artifacts written to storage.",
		},
	)

	datasetsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pmp_datasets_deleted_total",
			Help: "Total number of datasets deleted.",
		},
	)
)

// RecordDatasetGenerated counts one generated dataset artifact.
func RecordDatasetGenerated(format string) {
	datasetsGeneratedTotal.WithLabelValues(format).Inc()
}

// RecordSamplesGenerated counts generated samples per category.
func RecordSamplesGenerated(counts map[string]int) {
	for category, n := range counts {
		samplesGeneratedTotal.WithLabelValues(category).Add(float64(n))
	}
}

// ObserveGenerationDuration records the wall time of a generation request.
func ObserveGenerationDuration(start time.Time) {
	generationDuration.Observe(time.Since(start).Seconds())
}

// RecordGenerationFailure counts a failed generation request by stage.
func RecordGenerationFailure(stage string) {
	generationFailuresTotal.WithLabelValues(stage).Inc()
}

// RecordArtifactBytes counts bytes written to artifact storage.
func RecordArtifactBytes(n int64) {
	artifactBytesTotal.Add(float64(n))
}

// RecordDatasetDeleted counts one deleted dataset.
func RecordDatasetDeleted() {
	datasetsDeletedTotal.Inc()
}

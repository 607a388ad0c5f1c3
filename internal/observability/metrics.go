package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for a conversion and
// upload run.
type Metrics struct {
	FilesDiscovered prometheus.Counter
	FilesConverted  prometheus.Counter
	FilesUploaded   prometheus.Counter
	ConvertErrors   prometheus.Counter
	UploadErrors    prometheus.Counter
	RowsWritten     prometheus.Counter

	ConvertDuration prometheus.Histogram
	UploadDuration  prometheus.Histogram
}

// NewMetrics creates and registers all run metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FilesDiscovered,
		m.FilesConverted,
		m.FilesUploaded,
		m.ConvertErrors,
		m.UploadErrors,
		m.RowsWritten,
		m.ConvertDuration,
		m.UploadDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FilesDiscovered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "np_etl",
			Name:      "files_discovered_total",
			Help:      "Raw files matching the naming convention found in the data directory.",
		}),
		FilesConverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "np_etl",
			Name:      "files_converted_total",
			Help:      "Raw files successfully converted to the long-form table.",
		}),
		FilesUploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "np_etl",
			Name:      "files_uploaded_total",
			Help:      "Files (raw and L1) successfully uploaded to HIEv.",
		}),
		ConvertErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "np_etl",
			Name:      "convert_errors_total",
			Help:      "Conversion failures.",
		}),
		UploadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "np_etl",
			Name:      "upload_errors_total",
			Help:      "Upload failures after retries were exhausted.",
		}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "np_etl",
			Name:      "rows_written_total",
			Help:      "Long-form measurement rows written to output tables.",
		}),
		ConvertDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "np_etl",
			Name:      "convert_duration_seconds",
			Help:      "Duration of one raw-file conversion.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		UploadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "np_etl",
			Name:      "upload_duration_seconds",
			Help:      "Duration of one file upload, including retries.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

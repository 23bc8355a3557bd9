package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// QueriesTotal counts dashboard queries by subregion mode and range status
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "covidash_queries_total",
			Help: "Total number of dashboard queries executed",
		},
		[]string{"mode", "range_status"},
	)

	// QueryDuration measures Execute duration in seconds
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "covidash_query_duration_seconds",
			Help:    "Dashboard query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"mode"},
	)

	// ChartRendersTotal counts chart image requests
	ChartRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "covidash_chart_renders_total",
			Help: "Total number of chart images served",
		},
		[]string{"kind", "format", "cache"}, // cache: hit, miss, disabled
	)

	// RenderDuration measures image rendering duration in seconds
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "covidash_render_duration_seconds",
			Help:    "Chart image rendering duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~2.5s
		},
		[]string{"kind", "format"},
	)

	// DatasetRecords reports the row count of each loaded table
	DatasetRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "covidash_dataset_records",
			Help: "Number of records loaded per table",
		},
		[]string{"table"},
	)

	// ErrorsTotal counts errors by component and type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "covidash_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)

// RecordQuery records one executed dashboard query
func RecordQuery(mode, rangeStatus string, duration float64) {
	QueriesTotal.WithLabelValues(mode, rangeStatus).Inc()
	QueryDuration.WithLabelValues(mode).Observe(duration)
}

// RecordChartServed records a chart image response
func RecordChartServed(kind, format, cacheResult string) {
	ChartRendersTotal.WithLabelValues(kind, format, cacheResult).Inc()
}

// RecordRender records the time spent drawing one image
func RecordRender(kind, format string, duration float64) {
	RenderDuration.WithLabelValues(kind, format).Observe(duration)
}

// RecordDatasetCounts publishes per-table row counts
func RecordDatasetCounts(counts map[string]int) {
	for table, n := range counts {
		DatasetRecords.WithLabelValues(table).Set(float64(n))
	}
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

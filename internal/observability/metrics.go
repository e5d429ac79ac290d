package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// load-clean-aggregate pipeline and the query API.
type Metrics struct {
	RowsRead    *prometheus.CounterVec // labels: source={traffic,locations,fares}
	RowsDropped *prometheus.CounterVec // labels: reason={missing_year,missing_location,bad_fare_year,duplicate_fare}
	RowsKept    prometheus.Counter

	LoadDuration   prometheus.Histogram
	Reloads        prometheus.Counter
	ReloadFailures prometheus.Counter
	DatasetRows    prometheus.Gauge // aggregate rows in the current snapshot
	DatasetLoaded  prometheus.Gauge // 1 once a snapshot is available

	QueryDuration *prometheus.HistogramVec // labels: endpoint
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsRead,
		m.RowsDropped,
		m.RowsKept,
		m.LoadDuration,
		m.Reloads,
		m.ReloadFailures,
		m.DatasetRows,
		m.DatasetLoaded,
		m.QueryDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default
// registry, avoiding "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "air_traffic",
			Name:      "rows_read_total",
			Help:      "Raw rows read per input source.",
		}, []string{"source"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "air_traffic",
			Name:      "rows_dropped_total",
			Help:      "Rows dropped during cleaning, by reason.",
		}, []string{"reason"}),
		RowsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "air_traffic",
			Name:      "rows_kept_total",
			Help:      "Observation rows surviving cleaning and joins.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "air_traffic",
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete load-clean-aggregate pass.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		Reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "air_traffic",
			Name:      "reloads_total",
			Help:      "Successful dataset loads, including the initial one.",
		}),
		ReloadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "air_traffic",
			Name:      "reload_failures_total",
			Help:      "Dataset loads that failed and kept the previous snapshot.",
		}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "air_traffic",
			Name:      "dataset_rows",
			Help:      "Annual aggregate rows in the current snapshot.",
		}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "air_traffic",
			Name:      "dataset_loaded",
			Help:      "1 once a dataset snapshot is available, 0 before.",
		}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "air_traffic",
			Name:      "query_duration_seconds",
			Help:      "Duration of ranked-view and chart queries by endpoint.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"endpoint"}),
	}
}

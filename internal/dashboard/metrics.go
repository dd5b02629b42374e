package dashboard

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nao1215/cordexplorer/internal/model"
)

const metricsNamespace = "cordexplorer"

// Metrics holds the dashboard's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	loads        prometheus.Counter
	loadFailures prometheus.Counter
	loadDuration prometheus.Histogram
	rowsKept     prometheus.Gauge
	rowsDropped  prometheus.Gauge
	renders      *prometheus.CounterVec
}

// NewMetrics creates and registers the dashboard collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dataset_loads_total",
			Help:      "Number of completed dataset loads.",
		}),
		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dataset_load_failures_total",
			Help:      "Number of failed dataset loads.",
		}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Time spent loading, cleaning and aggregating the dataset.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		rowsKept: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rows_kept",
			Help:      "Rows in the cached dataset after cleaning.",
		}),
		rowsDropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rows_dropped",
			Help:      "Rows dropped from the cached dataset for unparseable publish_time.",
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "page_renders_total",
			Help:      "Number of rendered pages and charts.",
		}, []string{"page"}),
	}
	m.registry.MustRegister(m.loads, m.loadFailures, m.loadDuration, m.rowsKept, m.rowsDropped, m.renders)
	return m
}

// ObserveLoad records one load attempt. It matches LoadObserver.
func (m *Metrics) ObserveLoad(a *model.Analysis, elapsed time.Duration, err error) {
	m.loadDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.loadFailures.Inc()
		return
	}
	m.loads.Inc()
	m.rowsKept.Set(float64(a.RowsKept()))
	m.rowsDropped.Set(float64(a.RowsDropped))
}

// Rendered counts one render of page.
func (m *Metrics) Rendered(page string) {
	m.renders.WithLabelValues(page).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

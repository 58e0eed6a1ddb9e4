package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for table loading and lookups.
type Metrics struct {
	TableLoads        *prometheus.CounterVec   // labels: table={bands,irradiance}, outcome={success,error}
	TableLoadDuration *prometheus.HistogramVec // labels: table={bands,irradiance}
	Lookups           *prometheus.CounterVec   // labels: op={esun,nearest}, outcome={hit,miss,error}
	TablesCached      prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.TableLoads,
		m.TableLoadDuration,
		m.Lookups,
		m.TablesCached,
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
		TableLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hyperion",
			Name:      "table_loads_total",
			Help:      "Table loads by table and outcome.",
		}, []string{"table", "outcome"}),
		TableLoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hyperion",
			Name:      "table_load_duration_seconds",
			Help:      "Duration of reading and parsing a table.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"table"}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hyperion",
			Name:      "lookups_total",
			Help:      "Band lookups by operation and outcome.",
		}, []string{"op", "outcome"}),
		TablesCached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hyperion",
			Name:      "tables_cached",
			Help:      "1 when parsed tables are memoized, 0 when re-read on every call.",
		}),
	}
}

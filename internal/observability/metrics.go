package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for the ingestion pipeline.
type Metrics struct {
	FireRowsProcessed prometheus.Counter
	FireParseErrors   prometheus.Counter
	FireDuplicates    prometheus.Counter
	FireInserts       prometheus.Counter
	DisasterInserts   prometheus.Counter
	DisasterUpdates   prometheus.Counter
	StoreErrors       prometheus.Counter
	FetchFailures     *prometheus.CounterVec // label: source
}

// NewMetrics creates and registers all ingestion metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FireRowsProcessed,
		m.FireParseErrors,
		m.FireDuplicates,
		m.FireInserts,
		m.DisasterInserts,
		m.DisasterUpdates,
		m.StoreErrors,
		m.FetchFailures,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FireRowsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "digital_earth",
			Name:      "fire_rows_processed_total",
			Help:      "Total hotspot CSV rows handled, including skipped duplicates.",
		}),
		FireParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "digital_earth",
			Name:      "fire_parse_errors_total",
			Help:      "Total malformed hotspot rows skipped.",
		}),
		FireDuplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "digital_earth",
			Name:      "fire_duplicates_skipped_total",
			Help:      "Total fire records skipped by the recency-window dedup.",
		}),
		FireInserts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "digital_earth",
			Name:      "fire_inserts_total",
			Help:      "Total fire records inserted.",
		}),
		DisasterInserts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "digital_earth",
			Name:      "disaster_inserts_total",
			Help:      "Total disaster records inserted.",
		}),
		DisasterUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "digital_earth",
			Name:      "disaster_updates_total",
			Help:      "Total disaster records updated in place by the upsert.",
		}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "digital_earth",
			Name:      "store_errors_total",
			Help:      "Total records skipped because the store operation failed.",
		}),
		FetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "digital_earth",
			Name:      "fetch_failures_total",
			Help:      "Upstream feed fetch failures by source.",
		}, []string{"source"}),
	}
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_contacts_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_contacts_active_connections",
			Help: "Number of active connections",
		},
	)

	// CacheHits tracks import config cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_contacts_cache_hits_total",
			Help: "Number of import config cache lookups by result",
		},
		[]string{"result"},
	)

	// ImportRows counts processed import rows by final status
	ImportRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_import_rows_total",
			Help: "Number of import rows by final status",
		},
		[]string{"status"},
	)

	// ImportRuns counts import invocations by outcome
	ImportRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_import_runs_total",
			Help: "Number of import runs by result",
		},
		[]string{"result"},
	)

	// ImportDuration tracks the wall time of a whole import run
	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "contact_import_duration_seconds",
			Help:    "Duration of contact import runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	// RegionsCreated counts regions created implicitly by imports
	RegionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_import_regions_created_total",
			Help: "Number of regions created by imports",
		},
	)
)

// Package metrics defines and registers the custom Prometheus metrics of the
// datawolt service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry on package initialisation and
// are exposed through promhttp at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "datawolt"

// Ingestion results.
const (
	ResultComplete = "complete"
	ResultPartial  = "partial"
	ResultFailed   = "failed"
)

// ── Ingestion metrics ─────────────────────────────────────────────────────────

// IngestionsTotal counts ingestion runs.
// Label:
//   - result: "complete", "partial" (committed with a failed page) or "failed"
var IngestionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingestions_total",
		Help:      "Total number of ingestion runs, by result.",
	},
	[]string{"result"},
)

// IngestPagesFetchedTotal counts remote order-history pages fetched successfully.
var IngestPagesFetchedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_pages_fetched_total",
		Help:      "Total number of order-history pages fetched from the platform.",
	},
)

// IngestRecordsTotal counts committed records.
// Label:
//   - kind: "order" or "item"
var IngestRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_records_total",
		Help:      "Total number of records committed to snapshots, by kind.",
	},
	[]string{"kind"},
)

// IngestDuration measures a full ingestion run from credential parse to commit.
var IngestDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ingest_duration_seconds",
		Help:      "Duration of ingestion runs including all page fetches.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
)

// ── Presentation metrics ──────────────────────────────────────────────────────

// DashboardRequestsTotal counts dashboard renders.
// Label:
//   - state: "welcome", "invalid", "no_data" or "dashboard"
var DashboardRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_requests_total",
		Help:      "Total number of dashboard requests, by presentation state.",
	},
	[]string{"state"},
)

// SummaryCacheTotal counts summary cache lookups.
// Label:
//   - result: "hit" or "miss"
var SummaryCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_cache_total",
		Help:      "Total number of summary cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency per route.
// Labels:
//   - method: HTTP method
//   - route:  registered route path (e.g. "/v1/dashboard")
//   - code:   response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by method, route and status code.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "code"},
)

// ObserveIngestion records the outcome of one ingestion run.
func ObserveIngestion(result string, pages, orders, items int, seconds float64) {
	IngestionsTotal.WithLabelValues(result).Inc()
	IngestPagesFetchedTotal.Add(float64(pages))
	IngestRecordsTotal.WithLabelValues("order").Add(float64(orders))
	IngestRecordsTotal.WithLabelValues("item").Add(float64(items))
	IngestDuration.Observe(seconds)
}

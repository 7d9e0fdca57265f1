// Package metrics exposes the harness's Prometheus instrumentation:
// ingestion throughput counters and query latency histograms, served
// on /metrics by the API server and the ingest command.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	IngestRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "searchmark_ingest_records_total",
		Help: "Records successfully written, per engine.",
	}, []string{"engine"})

	IngestBatchesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "searchmark_ingest_batches_failed_total",
		Help: "Whole-batch transaction failures, per engine.",
	}, []string{"engine"})

	QueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "searchmark_query_latency_seconds",
		Help:    "Benchmark query latency, per engine and search type.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"engine", "search_type"})

	QueryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "searchmark_query_errors_total",
		Help: "Failed benchmark queries, per engine and search type.",
	}, []string{"engine", "search_type"})
)

// Handler returns the scrape endpoint for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

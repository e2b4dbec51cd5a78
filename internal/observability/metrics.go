// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ThreadsCreated counts thread inserts by kind ("post" or "reply").
	ThreadsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threadloom_threads_created_total",
		Help: "Total number of threads created by kind",
	}, []string{"kind"})

	// PartialWrites counts compound operations that failed after their
	// first write succeeded, leaving unlinked state behind.
	PartialWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threadloom_partial_writes_total",
		Help: "Total number of compound writes that failed mid-sequence",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "threadloom_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// UploadsTotal counts media uploads by outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threadloom_uploads_total",
		Help: "Total number of media uploads by outcome",
	}, []string{"outcome"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

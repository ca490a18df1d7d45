// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts counts authentication attempts by operation and outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storyhub_auth_attempts_total",
		Help: "Total number of authentication attempts",
	}, []string{"operation", "outcome"})

	// StoryMutations counts committed story and comment mutations.
	StoryMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storyhub_story_mutations_total",
		Help: "Total number of committed story and comment mutations",
	}, []string{"resource", "operation"})

	// Likes counts like and unlike operations.
	Likes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storyhub_likes_total",
		Help: "Total number of like and unlike operations",
	}, []string{"operation"})

	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storyhub_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storyhub_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// WebSocketConnections is the gauge of open activity feed connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storyhub_websocket_connections",
		Help: "Number of open activity feed connections",
	})

	// WebSocketBackpressureDrops counts feed messages dropped for slow clients.
	WebSocketBackpressureDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyhub_websocket_backpressure_drops_total",
		Help: "Total number of activity feed messages dropped due to backpressure",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// Outcome returns the outcome label for err.
func Outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

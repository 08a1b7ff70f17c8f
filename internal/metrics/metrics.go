// Package metrics defines Prometheus instrumentation for the progress
// pipeline. All collectors are registered on the default registry and served
// by the HTTP adapter's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label value constants to prevent typos
const (
	// Processing outcomes
	OutcomeApplied    = "applied"
	OutcomeDuplicate  = "duplicate"
	OutcomeUnenrolled = "unenrolled"
	OutcomeFailed     = "failed"

	// Leaderboard read sources
	SourceCache = "cache"
	SourceStore = "store"
)

var (
	// EventsPublished counts progress events accepted onto the queue.
	EventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wellness_progress_events_published_total",
		Help: "Progress events successfully published to the queue",
	})

	// EventsProcessed counts consumer deliveries by outcome.
	EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wellness_progress_events_processed_total",
		Help: "Progress event deliveries handled by the consumer, by outcome",
	}, []string{"outcome"})

	// EventsDeadLettered counts deliveries diverted to the dead-letter subject.
	EventsDeadLettered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wellness_progress_events_dead_lettered_total",
		Help: "Progress event deliveries diverted to the dead-letter subject, by reason",
	}, []string{"reason"})

	// ProcessingDuration observes end-to-end consumer processing time.
	ProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wellness_progress_processing_duration_seconds",
		Help:    "Time spent persisting an event and refreshing the leaderboard",
		Buckets: prometheus.DefBuckets,
	})

	// LeaderboardReads counts leaderboard reads by serving source.
	LeaderboardReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wellness_leaderboard_reads_total",
		Help: "Leaderboard reads, by whether the cache or the store served them",
	}, []string{"source"})

	// ConsumerActive is 1 while the consumer loop is running.
	ConsumerActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wellness_progress_consumer_active",
		Help: "Whether the progress consumer loop is running",
	})
)

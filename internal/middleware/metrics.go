package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// ModerationDecisions counts finalized moderation decisions by outcome.
	ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_moderation_decisions_total",
		Help: "Total number of finalized moderation decisions by outcome",
	}, []string{"outcome"})

	// ModerationValidationFailures counts moderation operations blocked by validation.
	ModerationValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdesk_moderation_validation_failures_total",
		Help: "Total number of moderation operations rejected by validation",
	}, []string{"operation"})

	// SnapshotBroadcasts counts full pending-queue snapshots pushed to subscribers.
	SnapshotBroadcasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsdesk_snapshot_broadcasts_total",
		Help: "Total number of pending-queue snapshots broadcast to subscribers",
	})

	// SnapshotSubscribers is the gauge of live snapshot subscribers.
	SnapshotSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "newsdesk_snapshot_subscribers",
		Help: "Number of connected pending-queue snapshot subscribers",
	})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

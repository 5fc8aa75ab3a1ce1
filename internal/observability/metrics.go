// README: Prometheus metrics for command processing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "smartride", Name: "commands_total", Help: "Total commands processed, by resulting action"},
		[]string{"action"},
	)
	CommandFailures = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "smartride", Name: "command_failures_total", Help: "Commands that produced a failed result"},
	)
	CollaboratorFailures = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "smartride", Name: "collaborator_failures_total", Help: "Failed pricing/recommendation collaborator calls"},
	)
	CommandLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "smartride",
			Name:      "command_latency_seconds",
			Help:      "Command processing latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Package metrics holds the service's Prometheus collectors, exposed on the
// HTTP server's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TasksCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_tasks_created_total",
		Help: "Tasks created, by type.",
	}, []string{"type"})

	TasksDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_tasks_dispatched_total",
		Help: "Task leases handed to workers, by type.",
	}, []string{"type"})

	TasksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_tasks_completed_total",
		Help: "Tasks completed successfully, by type.",
	}, []string{"type"})

	TasksRequeued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_tasks_requeued_total",
		Help: "Tasks returned to PENDING after a transient failure or lost lease, by type.",
	}, []string{"type"})

	TasksErrored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_tasks_errored_total",
		Help: "Tasks that exhausted their attempts, by type.",
	}, []string{"type"})

	TasksCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_tasks_cancelled_total",
		Help: "Tasks cancelled by an administrator or by cascade.",
	})

	WorkersConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dispatch_workers_connected",
		Help: "Workers currently attached to the availability push channel.",
	})
)

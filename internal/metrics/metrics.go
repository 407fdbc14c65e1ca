// Package metrics holds Prometheus instruments shared across the engine.
// All collectors are registered with the global registry, so importing this
// package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Payload validation failures by entity and reason code.",
		}, []string{"entity", "reason"})

	RepositoryOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repository_ops_total",
			Help: "Completed repository operations by entity and operation.",
		}, []string{"entity", "op"})

	StorageErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storage_errors_total",
			Help: "Cumulative number of storage-level failures.",
		})
)

func init() {
	prometheus.MustRegister(
		ValidationFailuresTotal,
		RepositoryOpsTotal,
		StorageErrorsTotal,
	)
}

// Package metrics exposes prometheus collectors for the task tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AccessDecisions counts guard decisions by action and outcome.
	AccessDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskhive",
		Subsystem: "access",
		Name:      "decisions_total",
		Help:      "The total number of access decisions by action and outcome",
	}, []string{"action", "outcome"})

	// Mutations counts committed writes by entity and operation.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskhive",
		Subsystem: "store",
		Name:      "mutations_total",
		Help:      "The total number of committed writes by entity and operation",
	}, []string{"entity", "op"})
)

// ObserveDecision counts one access decision. Outcome is "allow" or a deny reason.
func ObserveDecision(action, outcome string) {
	AccessDecisions.WithLabelValues(action, outcome).Inc()
}

// ObserveMutation counts one committed write.
func ObserveMutation(entity, op string) {
	Mutations.WithLabelValues(entity, op).Inc()
}

package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	// Reconciliation metrics
	reconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cbdctl",
			Subsystem: "controller",
			Name:      "reconcile_total",
			Help:      "Total number of reconciliations by result",
		},
		[]string{"cluster", "result"},
	)

	reconcileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cbdctl",
			Subsystem: "controller",
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconciliation in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
		[]string{"cluster"},
	)

	// Lifecycle metrics
	phaseTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cbdctl",
			Subsystem: "cluster",
			Name:      "phase_transitions_total",
			Help:      "Total number of lifecycle phase transitions by target phase",
		},
		[]string{"cluster", "phase"},
	)

	pollsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cbdctl",
			Subsystem: "cluster",
			Name:      "polls_total",
			Help:      "Total number of lifecycle status polls by operation",
		},
		[]string{"cluster", "operation"},
	)
)

func init() {
	// Register metrics with controller-runtime's registry
	metrics.Registry.MustRegister(
		reconcileTotal,
		reconcileDuration,
		phaseTransitionsTotal,
		pollsTotal,
	)
}

// recordReconcileMetric records a reconciliation result.
func recordReconcileMetric(cluster, result string, duration float64) {
	reconcileTotal.WithLabelValues(cluster, result).Inc()
	reconcileDuration.WithLabelValues(cluster).Observe(duration)
}

// recordPhaseTransitionMetric records a lifecycle phase transition.
func recordPhaseTransitionMetric(cluster, phase string) {
	phaseTransitionsTotal.WithLabelValues(cluster, phase).Inc()
}

// recordPollMetric records one status poll against the control plane.
func recordPollMetric(cluster, operation string) {
	pollsTotal.WithLabelValues(cluster, operation).Inc()
}

// Metrics helper methods that check enableMetrics before recording.
// These eliminate the repeated `if r.enableMetrics` pattern at call sites.

func (r *ClusterReconciler) recordReconcile(cluster, result string, duration float64) {
	if r.enableMetrics {
		recordReconcileMetric(cluster, result, duration)
	}
}

func (r *ClusterReconciler) recordPhaseTransition(cluster, phase string) {
	if r.enableMetrics {
		recordPhaseTransitionMetric(cluster, phase)
	}
}

func (r *ClusterReconciler) recordPoll(cluster, operation string) {
	if r.enableMetrics {
		recordPollMetric(cluster, operation)
	}
}

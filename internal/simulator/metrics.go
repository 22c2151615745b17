package simulator

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cbdsim",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cbdsim",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route"},
	)

	clusterTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cbdsim",
			Subsystem: "fsm",
			Name:      "cluster_transitions_total",
			Help:      "Total number of cluster status transitions",
		},
		[]string{"from", "to"},
	)
)

func init() {
	prometheus.MustRegister(
		requestsTotal,
		requestDuration,
		clusterTransitionsTotal,
	)
}

// recordRequestMetric records one handled HTTP request.
func recordRequestMetric(method, route, status string, duration float64) {
	requestsTotal.WithLabelValues(method, route, status).Inc()
	requestDuration.WithLabelValues(method, route).Observe(duration)
}

// recordTransitionMetric records a cluster status transition.
func recordTransitionMetric(from, to string) {
	clusterTransitionsTotal.WithLabelValues(from, to).Inc()
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewProviderRetriesTotal returns a Prometheus counter for the number of retry attempts against the route provider
func NewProviderRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "route_provider_retries_total",
		Help: "Total number of retry attempts against the route provider",
	})
}

// NewFallbackEstimatesTotal returns a Prometheus counter for the number of degraded-mode distance estimates
func NewFallbackEstimatesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fallback_estimates_total",
		Help: "Total number of degraded-mode distance estimates used in place of provider routes",
	})
}

// NewAssignmentsCommittedTotal returns a Prometheus counter for the number of committed assignments
func NewAssignmentsCommittedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignments_committed_total",
		Help: "Total number of committed driver-order assignments",
	})
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PollerMetrics records cycle metadata for the stock poller.
type PollerMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	zeroed   *prometheus.CounterVec
}

// NewPollerMetrics registers the poller metrics on the provided registerer.
func NewPollerMetrics(reg prometheus.Registerer) *PollerMetrics {
	if reg == nil {
		return &PollerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "poller_cycle_duration_seconds",
		Help:    "Duration of poller cycles in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "poller_cycle_success",
		Help: "Successful poller cycles.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "poller_cycle_failure",
		Help: "Failed poller cycles.",
	}, []string{"job"})
	zeroed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "poller_listings_zeroed",
		Help: "Listings set to zero quantity after a low stock signal.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure, zeroed)
	return &PollerMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		zeroed:   zeroed,
	}
}

// ObserveDuration records the duration for the named job.
func (p *PollerMetrics) ObserveDuration(job string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (p *PollerMetrics) IncSuccess(job string) {
	if p == nil || p.success == nil {
		return
	}
	p.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (p *PollerMetrics) IncFailure(job string) {
	if p == nil || p.failure == nil {
		return
	}
	p.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncZeroed increments the zeroed-listing counter for the named job.
func (p *PollerMetrics) IncZeroed(job string) {
	if p == nil || p.zeroed == nil {
		return
	}
	p.zeroed.WithLabelValues(normalizeLabel(job)).Inc()
}

func normalizeLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}

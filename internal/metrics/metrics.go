package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream calls
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gameroom_upstream_requests_total",
		Help: "Requests issued to upstream catalog APIs.",
	}, []string{"source", "outcome"}) // outcome: ok, error

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gameroom_upstream_request_duration_seconds",
		Help:    "Latency of upstream catalog API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	TokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gameroom_token_refreshes_total",
		Help: "Client-credentials token exchanges.",
	}, []string{"outcome"})

	Fallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gameroom_fallback_total",
		Help: "Upstream failures absorbed into empty or fallback data.",
	}, []string{"source"})

	// Response cache
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gameroom_cache_lookups_total",
		Help: "Response cache lookups by result.",
	}, []string{"result"}) // result: hit, miss, error

	// HTTP surface
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gameroom_http_requests_total",
		Help: "HTTP requests served by route and status code.",
	}, []string{"route", "status"})
)

// Outcome maps an error to the outcome label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordUpstream counts an upstream call and observes its latency.
func RecordUpstream(source string, start time.Time, err error) {
	UpstreamRequests.WithLabelValues(source, Outcome(err)).Inc()
	UpstreamDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

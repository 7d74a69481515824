package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	// registry refuses duplicate registration, so Init runs once
	once sync.Once

	// route is the gin route template (c.FullPath()), never the raw path
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPInflightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// PeerRequestsTotal counts outbound calls to the product and logging services.
	// Failed calls never reach the client, so this is where they show up.
	PeerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peer_requests_total",
			Help: "Outbound peer service calls by outcome.",
		},
		[]string{"peer", "outcome"},
	)

	PeerRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "peer_request_duration_seconds",
			Help:    "Outbound peer service call latency.",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"peer"},
	)
)

// Init registers the collectors with the default registry.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			HTTPInflightRequests,
			PeerRequestsTotal,
			PeerRequestDurationSeconds,
		)
	})
}

// ObservePeer records one outbound call started at start.
func ObservePeer(peer string, start time.Time, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	PeerRequestsTotal.WithLabelValues(peer, outcome).Inc()
	PeerRequestDurationSeconds.WithLabelValues(peer).Observe(time.Since(start).Seconds())
}

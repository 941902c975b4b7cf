package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_http_requests_total",
		Help: "The total number of HTTP requests by path and status code",
	}, []string{"path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_http_request_duration_seconds",
		Help:    "Time spent serving HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_login_attempts_total",
		Help: "The total number of login attempts by outcome",
	}, []string{"outcome"})

	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_source_fetches_total",
		Help: "The total number of transaction source fetches by outcome",
	}, []string{"mode", "outcome"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "portal_source_fetch_duration_seconds",
		Help:    "Time spent fetching the transaction collection",
		Buckets: prometheus.LinearBuckets(0.1, 0.2, 10),
	})

	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_snapshot_cache_total",
		Help: "Snapshot cache lookups by result",
	}, []string{"result"})

	rateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_rate_limit_rejections_total",
		Help: "The total number of requests rejected by the rate limiter",
	})
)

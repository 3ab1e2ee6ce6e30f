package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xwitter_http_requests_total",
		Help: "The total number of handled HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xwitter_http_request_duration_seconds",
		Help:    "Histogram of HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	BackendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xwitter_backend_request_latency",
		Help:    "Histogram of backend API request latency in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"method", "path", "status_code"})

	TreeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xwitter_comment_tree_mutations_total",
		Help: "The total number of comment tree mutations by outcome",
	}, []string{"operation", "outcome"})

	Refetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xwitter_post_refetches_total",
		Help: "The total number of full post refetches",
	}, []string{"reason"})

	CachedPosts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "xwitter_cached_posts",
		Help: "Number of post details currently cached.",
	})
)

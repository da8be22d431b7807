package github

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APICallsTotal tracks GitHub API calls per operation
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "githubmcp_api_calls_total",
			Help: "Total number of GitHub API calls",
		},
		[]string{"operation"},
	)

	// APIErrorsTotal tracks failed GitHub API calls per operation and error kind
	APIErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "githubmcp_api_errors_total",
			Help: "Total number of failed GitHub API calls",
		},
		[]string{"operation", "kind"},
	)

	// RetriesTotal tracks backoff retries triggered by rate limiting
	RetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "githubmcp_rate_limit_retries_total",
			Help: "Total number of backoff retries after rate limit errors",
		},
	)

	// RateLimitRemaining tracks the last observed core quota remaining
	RateLimitRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "githubmcp_rate_limit_remaining",
			Help: "Remaining GitHub API core quota at last check",
		},
	)

	// APILatency tracks GitHub API call latency per operation
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "githubmcp_api_latency_seconds",
			Help:    "GitHub API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

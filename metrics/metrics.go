// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the Prometheus collectors shared by both services.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values
const (
	OutcomeOK          = "ok"
	OutcomeBadRequest  = "bad_request"
	OutcomeConnError   = "connection_error"
	OutcomeQueryError  = "query_error"
	OutcomeFetchError  = "fetch_error"
	OutcomeDecodeError = "decode_error"
)

var (
	CubeRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cube_requests_total",
		Help: "Cube API requests by operation and outcome",
	}, []string{"operation", "outcome"})
	QueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cube_query_duration_seconds",
		Help:    "Time spent executing cube queries",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"operation"})
	DashboardFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_fetch_total",
		Help: "Dashboard fetches from the cube API by endpoint and outcome",
	}, []string{"endpoint", "outcome"})
)

func init() {
	prometheus.MustRegister(CubeRequests, QueryDuration, DashboardFetches)
}

// ObserveQuery records how long an operation's query took.
func ObserveQuery(operation string, start time.Time) {
	QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khata_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "khata_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"method", "endpoint"})

	LedgerMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khata_ledger_mutations_total",
		Help: "Committed ledger mutations by action",
	}, []string{"action"})

	StreamSubscribers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "khata_stream_subscribers",
		Help: "Connected live stream clients by feed",
	}, []string{"feed"})

	ForexFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khata_forex_fetches_total",
		Help: "Reference rate lookups by result",
	}, []string{"result"})
)

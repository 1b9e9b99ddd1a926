// Package metrics instruments query exchanges with Prometheus collectors,
// the same CounterVec/HistogramVec pattern the teacher's gRPC middleware
// uses for RPC instrumentation, adapted here to label by transport and
// outcome instead of by method and gRPC status code.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ExchangesTotal counts completed exchanges by transport and outcome
	// ("ok", "timeout", "error").
	ExchangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dnsquery_exchanges_total",
			Help: "Total DNS exchanges attempted, by transport and outcome.",
		},
		[]string{"transport", "outcome"},
	)

	// ExchangeDurationSeconds observes round-trip latency by transport.
	ExchangeDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dnsquery_exchange_duration_seconds",
			Help:    "DNS exchange round-trip time, by transport.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"transport"},
	)

	// RetriesTotal counts UDP responses retried over TCP due to TC=1.
	RetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dnsquery_tcp_retries_total",
			Help: "Truncated UDP responses retried over TCP.",
		},
	)
)

func init() {
	prometheus.MustRegister(ExchangesTotal, ExchangeDurationSeconds, RetriesTotal)
}

// Outcome classifies an exchange for the ExchangesTotal counter.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeTimeout Outcome = "timeout"
	OutcomeError   Outcome = "error"
)

// Observe records one completed (or failed) exchange.
func Observe(transportMode string, outcome Outcome, seconds float64, retried bool) {
	ExchangesTotal.WithLabelValues(transportMode, string(outcome)).Inc()
	ExchangeDurationSeconds.WithLabelValues(transportMode).Observe(seconds)
	if retried {
		RetriesTotal.Inc()
	}
}

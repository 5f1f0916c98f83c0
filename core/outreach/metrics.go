package outreach

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	transportLatency   *prometheus.HistogramVec
	recipientsTotal    *prometheus.CounterVec
	messagesDispatched *prometheus.CounterVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.HistogramVec, *prometheus.CounterVec, *prometheus.CounterVec) {
	lat := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outreach_transport_latency_seconds",
			Help:    "Latency of batch transport calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"channel"},
	)
	rec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_recipients_total",
			Help: "Number of recipients processed, by channel and outcome",
		},
		[]string{"channel", "status"},
	)
	msg := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_messages_total",
			Help: "Number of outreach messages dispatched, by channel and final status",
		},
		[]string{"channel", "status"},
	)
	return lat, rec, msg
}

func init() {
	transportLatency, recipientsTotal, messagesDispatched = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers outreach metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(transportLatency, recipientsTotal, messagesDispatched)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	transportLatency, recipientsTotal, messagesDispatched = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}

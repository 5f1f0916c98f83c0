package metrics

import (
	coremetrics "github.com/freightops/loadmatch/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records outreach and matching events in Prometheus metrics.
type PromSink struct {
	outcomes *prometheus.CounterVec
	passes   prometheus.Counter
	topScore prometheus.Gauge
	poolSize prometheus.Gauge
}

// NewPromSink registers metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outreach_recipient_outcomes_total",
		Help: "Total number of per-recipient outreach outcomes",
	}, []string{"channel", "status"})
	passes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "match_passes_total",
		Help: "Total number of scoring passes over a carrier pool",
	})
	topScore := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "match_top_score",
		Help: "Top score of the most recent scoring pass",
	})
	poolSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "match_pool_size",
		Help: "Carrier pool size of the most recent scoring pass",
	})

	if err := reg.Register(outcomes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			outcomes = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(passes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			passes = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(topScore); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			topScore = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(poolSize); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			poolSize = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{outcomes: outcomes, passes: passes, topScore: topScore, poolSize: poolSize}, nil
}

// RecordOutreachResult increments the counter for each recipient outcome.
func (s *PromSink) RecordOutreachResult(res []coremetrics.OutreachResult) error {
	for _, r := range res {
		s.outcomes.WithLabelValues(r.Channel.String(), r.Status).Inc()
	}
	return nil
}

// RecordMatchPass updates the scoring-pass metrics.
func (s *PromSink) RecordMatchPass(pass coremetrics.MatchPass) error {
	s.passes.Inc()
	s.topScore.Set(pass.TopScore)
	s.poolSize.Set(float64(pass.PoolSize))
	return nil
}

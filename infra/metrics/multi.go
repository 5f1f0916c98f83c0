package metrics

import coremetrics "github.com/freightops/loadmatch/core/metrics"

// MultiSink fans outreach results out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.OutreachSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.OutreachSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordOutreachResult forwards the results to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordOutreachResult(res []coremetrics.OutreachResult) error {
	var first error
	for _, s := range m.Sinks {
		if err := s.RecordOutreachResult(res); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RecordMatchPass forwards scoring passes to sinks that support them.
func (m *MultiSink) RecordMatchPass(pass coremetrics.MatchPass) error {
	var first error
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.MatchPassRecorder); ok {
			if err := rec.RecordMatchPass(pass); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

package metrics

import (
	"time"

	"github.com/freightops/loadmatch/core/model"
)

// OutreachResult represents a per-recipient outreach event to be recorded.
type OutreachResult struct {
	MessageID int64
	LoadID    int64
	CarrierID int64
	Channel   model.Channel
	Status    string
	Error     string
	DryRun    bool
	Time      time.Time
}

// OutreachSink records outreach results for observability purposes.
type OutreachSink interface {
	RecordOutreachResult(results []OutreachResult) error
}

// MatchPass captures data about one scoring pass over a carrier pool.
type MatchPass struct {
	LoadID     int64
	PoolSize   int
	Candidates int
	TopScore   float64
	MeanScore  float64
	Time       time.Time
}

// MatchPassRecorder is implemented by sinks able to record scoring passes.
type MatchPassRecorder interface {
	RecordMatchPass(pass MatchPass) error
}

// NopSink implements the sink interfaces with no-op methods.
type NopSink struct{}

func (NopSink) RecordOutreachResult([]OutreachResult) error { return nil }
func (NopSink) RecordMatchPass(MatchPass) error             { return nil }

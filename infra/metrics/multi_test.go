package metrics

import (
	"errors"
	"testing"
	"time"

	coremetrics "github.com/freightops/loadmatch/core/metrics"
	"github.com/freightops/loadmatch/core/model"
	"github.com/prometheus/client_golang/prometheus"
)

type recordingSink struct {
	results []coremetrics.OutreachResult
	passes  []coremetrics.MatchPass
	err     error
}

func (s *recordingSink) RecordOutreachResult(res []coremetrics.OutreachResult) error {
	s.results = append(s.results, res...)
	return s.err
}

func (s *recordingSink) RecordMatchPass(pass coremetrics.MatchPass) error {
	s.passes = append(s.passes, pass)
	return s.err
}

func TestMultiSinkFansOut(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	m := NewMultiSink(a, b)

	res := []coremetrics.OutreachResult{{MessageID: 1, CarrierID: 11, Channel: model.ChannelEmail, Status: "SENT", Time: time.Now()}}
	if err := m.RecordOutreachResult(res); err != nil {
		t.Fatalf("RecordOutreachResult: %v", err)
	}
	if len(a.results) != 1 || len(b.results) != 1 {
		t.Errorf("fan-out results = %d/%d, want 1/1", len(a.results), len(b.results))
	}

	if err := m.RecordMatchPass(coremetrics.MatchPass{LoadID: 7, PoolSize: 3}); err != nil {
		t.Fatalf("RecordMatchPass: %v", err)
	}
	if len(a.passes) != 1 || len(b.passes) != 1 {
		t.Errorf("fan-out passes = %d/%d, want 1/1", len(a.passes), len(b.passes))
	}
}

func TestMultiSinkFirstErrorAfterAll(t *testing.T) {
	a := &recordingSink{err: errors.New("boom")}
	b := &recordingSink{}
	m := NewMultiSink(a, b)

	err := m.RecordOutreachResult([]coremetrics.OutreachResult{{MessageID: 1}})
	if err == nil || err.Error() != "boom" {
		t.Errorf("err = %v, want boom", err)
	}
	if len(b.results) != 1 {
		t.Error("second sink must still receive the results")
	}
}

func TestPromSinkRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	s, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("second registration: %v", err)
	}
	if err := s.RecordOutreachResult([]coremetrics.OutreachResult{
		{Channel: model.ChannelSMS, Status: "SENT"},
	}); err != nil {
		t.Errorf("RecordOutreachResult: %v", err)
	}
	if err := s.RecordMatchPass(coremetrics.MatchPass{TopScore: 62.5, PoolSize: 4}); err != nil {
		t.Errorf("RecordMatchPass: %v", err)
	}
}

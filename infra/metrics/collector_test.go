package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/freightops/loadmatch/core/events"
	coremetrics "github.com/freightops/loadmatch/core/metrics"
	"github.com/freightops/loadmatch/internal/eventbus"
)

type collectedPasses struct {
	mu     sync.Mutex
	passes []coremetrics.MatchPass
}

func (s *collectedPasses) RecordOutreachResult([]coremetrics.OutreachResult) error { return nil }

func (s *collectedPasses) RecordMatchPass(p coremetrics.MatchPass) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passes = append(s.passes, p)
	return nil
}

func (s *collectedPasses) snapshot() []coremetrics.MatchPass {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]coremetrics.MatchPass(nil), s.passes...)
}

func TestEventCollectorRecordsMatchPasses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := eventbus.New()
	defer bus.Close()
	sink := &collectedPasses{}
	StartEventCollector(ctx, bus, sink)

	bus.Publish(events.MatchEvent{LoadID: 7, PoolSize: 3, Candidates: 2, TopScore: 87.5, MeanScore: 56.5})

	deadline := time.After(2 * time.Second)
	for len(sink.snapshot()) == 0 {
		select {
		case <-deadline:
			t.Fatal("match pass was never recorded")
		case <-time.After(10 * time.Millisecond):
		}
	}
	p := sink.snapshot()[0]
	if p.LoadID != 7 || p.PoolSize != 3 || p.Candidates != 2 || p.TopScore != 87.5 || p.MeanScore != 56.5 {
		t.Errorf("recorded pass = %+v", p)
	}
	if p.Time.IsZero() {
		t.Error("recorded pass must carry a timestamp")
	}
}

func TestEventCollectorIgnoresUnrelatedEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := eventbus.New()
	defer bus.Close()
	sink := &collectedPasses{}
	StartEventCollector(ctx, bus, sink)

	bus.Publish(events.SendEvent{MessageID: 1})
	bus.Publish(events.MatchEvent{LoadID: 9})

	deadline := time.After(2 * time.Second)
	for len(sink.snapshot()) == 0 {
		select {
		case <-deadline:
			t.Fatal("match pass was never recorded")
		case <-time.After(10 * time.Millisecond):
		}
	}
	passes := sink.snapshot()
	if len(passes) != 1 || passes[0].LoadID != 9 {
		t.Errorf("recorded passes = %+v, want only the match event", passes)
	}
}

func TestEventCollectorNilArgs(t *testing.T) {
	// Must be a no-op, not a panic.
	StartEventCollector(context.Background(), nil, &collectedPasses{})
	StartEventCollector(context.Background(), eventbus.New(), nil)
}

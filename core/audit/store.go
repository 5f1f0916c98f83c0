package audit

import (
	"context"
	"time"
)

// Query defines filters for retrieving audit records.
type Query struct {
	Start  time.Time
	End    time.Time
	Action string
}

// Store persists audit events and supports querying.
type Store interface {
	Append(ctx context.Context, ev Event) error
	Query(ctx context.Context, q Query) ([]Event, error)
	Close() error
}

// StoreSink adapts a Store into a Sink.
type StoreSink struct {
	Store Store
}

func (s StoreSink) Record(ctx context.Context, ev Event) error {
	return s.Store.Append(ctx, ev)
}

// MultiSink fans an event out to several sinks. The first error is
// returned after all sinks were attempted.
type MultiSink []Sink

func (m MultiSink) Record(ctx context.Context, ev Event) error {
	var first error
	for _, s := range m {
		if err := s.Record(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

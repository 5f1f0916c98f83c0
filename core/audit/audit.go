package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/freightops/loadmatch/infra/logger"
)

// Event is one audit record. Exactly one event is emitted per outreach
// dispatch attempt; it is the only durable trace that a send was tried.
type Event struct {
	ID       string         `json:"id"`
	Domain   string         `json:"domain"`
	Action   string         `json:"action"`
	EntityID int64          `json:"entity_id"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Time     time.Time      `json:"time"`
}

// NewEvent builds an event with a fresh id and timestamp.
func NewEvent(domain, action string, entityID int64, metadata map[string]any) Event {
	return Event{
		ID:       uuid.NewString(),
		Domain:   domain,
		Action:   action,
		EntityID: entityID,
		Metadata: metadata,
		Time:     time.Now().UTC(),
	}
}

// Sink consumes audit events. Implementations must be safe to call from the
// dispatch path; errors are the caller's to log and swallow, never to
// propagate into the dispatch result.
type Sink interface {
	Record(ctx context.Context, ev Event) error
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) Record(context.Context, Event) error { return nil }

// LoggerSink writes events to the application log.
type LoggerSink struct {
	Log logger.Logger
}

func (s LoggerSink) Record(_ context.Context, ev Event) error {
	s.Log.Debugw("audit_event", map[string]any{
		"id":        ev.ID,
		"domain":    ev.Domain,
		"action":    ev.Action,
		"entity_id": ev.EntityID,
		"metadata":  ev.Metadata,
	})
	return nil
}

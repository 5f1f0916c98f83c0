package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	coreaudit "github.com/freightops/loadmatch/core/audit"
)

type memStore struct{ events []coreaudit.Event }

func (m *memStore) Append(_ context.Context, ev coreaudit.Event) error {
	m.events = append(m.events, ev)
	return nil
}

func (m *memStore) Query(_ context.Context, q coreaudit.Query) ([]coreaudit.Event, error) {
	var out []coreaudit.Event
	for _, ev := range m.events {
		if q.Action != "" && ev.Action != q.Action {
			continue
		}
		if !q.Start.IsZero() && ev.Time.Before(q.Start) {
			continue
		}
		if !q.End.IsZero() && ev.Time.After(q.End) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (m *memStore) Close() error { return nil }

func TestLogHandlerFilters(t *testing.T) {
	store := &memStore{}
	now := time.Now().UTC()
	for _, ev := range []coreaudit.Event{
		{ID: "a", Action: "OUTREACH_SEND", EntityID: 7, Time: now},
		{ID: "b", Action: "OUTREACH_SEND_DRY_RUN", EntityID: 7, Time: now},
		{ID: "c", Action: "OUTREACH_SEND", EntityID: 8, Time: now.Add(-48 * time.Hour)},
	} {
		if err := store.Append(context.Background(), ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	h := NewLogHandler(store)

	start := now.Add(-time.Hour).Format(time.RFC3339)
	req := httptest.NewRequest(http.MethodGet, "/api/freight/audit/logs?action=OUTREACH_SEND&start="+start, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var events []coreaudit.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 1 || events[0].ID != "a" {
		t.Errorf("events = %+v, want only the recent OUTREACH_SEND", events)
	}
}

func TestLogHandlerMethodNotAllowed(t *testing.T) {
	h := NewLogHandler(&memStore{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/freight/audit/logs", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"

	coreaudit "github.com/freightops/loadmatch/core/audit"
)

// JSONLStore stores audit events in a JSONL file.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONLStore creates the file at path if missing.
func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &JSONLStore{path: path}, nil
}

// Append writes the event as one JSON line.
func (s *JSONLStore) Append(_ context.Context, ev coreaudit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return json.NewEncoder(f).Encode(ev)
}

// Query scans the file and returns events matching q. Malformed lines are
// skipped.
func (s *JSONLStore) Query(_ context.Context, q coreaudit.Query) ([]coreaudit.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var res []coreaudit.Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev coreaudit.Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue
		}
		if !q.Start.IsZero() && ev.Time.Before(q.Start) {
			continue
		}
		if !q.End.IsZero() && ev.Time.After(q.End) {
			continue
		}
		if q.Action != "" && ev.Action != q.Action {
			continue
		}
		res = append(res, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close is a no-op; the file is opened per operation.
func (s *JSONLStore) Close() error { return nil }

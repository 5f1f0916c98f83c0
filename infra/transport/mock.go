package transport

import (
	"context"
	"sync"

	"github.com/freightops/loadmatch/core/model"
	"github.com/freightops/loadmatch/core/outreach"
)

// MockCall records one SendBatch invocation.
type MockCall struct {
	Channel   model.Channel
	Message   outreach.BatchMessage
	Addresses []string
}

// MockTransport is an in-process transport for tests and demos. Every
// address succeeds unless registered with FailAddress.
type MockTransport struct {
	mu       sync.Mutex
	calls    []MockCall
	failures map[string]string
	err      error
}

// NewMockTransport creates a MockTransport.
func NewMockTransport() *MockTransport {
	return &MockTransport{failures: make(map[string]string)}
}

// FailAddress makes the given address fail with the message.
func (m *MockTransport) FailAddress(addr, errText string) {
	m.mu.Lock()
	m.failures[addr] = errText
	m.mu.Unlock()
}

// FailAll makes the whole SendBatch call fail with err.
func (m *MockTransport) FailAll(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Calls returns the recorded invocations.
func (m *MockTransport) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// SendBatch implements outreach.Transport.
func (m *MockTransport) SendBatch(_ context.Context, ch model.Channel, msg outreach.BatchMessage, addresses []string) ([]outreach.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Channel: ch, Message: msg, Addresses: append([]string(nil), addresses...)})
	if m.err != nil {
		return nil, m.err
	}
	results := make([]outreach.Result, len(addresses))
	for i, a := range addresses {
		if errText, ok := m.failures[a]; ok {
			results[i] = outreach.Result{Success: false, Error: errText}
		} else {
			results[i] = outreach.Result{Success: true}
		}
	}
	return results, nil
}

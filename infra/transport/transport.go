package transport

import (
	"context"
	"fmt"

	"github.com/freightops/loadmatch/core/model"
	"github.com/freightops/loadmatch/core/outreach"
)

// Config configures the outbound transports, one endpoint per channel.
// When Mock is set both channels use an in-process transport that records
// calls and always succeeds; the endpoints may then be left empty.
type Config struct {
	Mock  bool           `json:"mock"`
	Email EndpointConfig `json:"email"`
	SMS   EndpointConfig `json:"sms"`
}

// Validate checks endpoint configuration unless mocking.
func (c Config) Validate() error {
	if c.Mock {
		return nil
	}
	if err := c.Email.Validate(); err != nil {
		return fmt.Errorf("email: %w", err)
	}
	if err := c.SMS.Validate(); err != nil {
		return fmt.Errorf("sms: %w", err)
	}
	return nil
}

// Router is an outreach.Transport that routes each batch to the gateway of
// its channel.
type Router struct {
	email *httpBatchClient
	sms   *httpBatchClient
}

// New builds the configured transport.
func New(cfg Config) (outreach.Transport, error) {
	if cfg.Mock {
		return NewMockTransport(), nil
	}
	email, err := newHTTPBatchClient(cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("email transport: %w", err)
	}
	sms, err := newHTTPBatchClient(cfg.SMS)
	if err != nil {
		return nil, fmt.Errorf("sms transport: %w", err)
	}
	return &Router{email: email, sms: sms}, nil
}

// SendBatch implements outreach.Transport.
func (r *Router) SendBatch(ctx context.Context, ch model.Channel, msg outreach.BatchMessage, addresses []string) ([]outreach.Result, error) {
	switch ch {
	case model.ChannelEmail:
		return r.email.send(ctx, msg, addresses)
	case model.ChannelSMS:
		return r.sms.send(ctx, msg, addresses)
	default:
		return nil, fmt.Errorf("unknown channel %v", ch)
	}
}

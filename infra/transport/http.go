package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/freightops/loadmatch/core/outreach"
)

// EndpointConfig configures one provider gateway endpoint.
type EndpointConfig struct {
	URL            string `json:"url"`
	APIKey         string `json:"api_key"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *EndpointConfig) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 15
	}
}

// Validate checks mandatory fields.
func (c EndpointConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("endpoint url is required")
	}
	return nil
}

type batchRequest struct {
	From     string   `json:"from"`
	FromName string   `json:"fromName,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Body     string   `json:"body"`
	To       []string `json:"to"`
}

type batchResponse struct {
	Results []outreach.Result `json:"results"`
}

// httpBatchClient posts one batch message to a provider gateway and decodes
// the per-recipient results.
type httpBatchClient struct {
	cfg    EndpointConfig
	client *http.Client
}

func newHTTPBatchClient(cfg EndpointConfig) (*httpBatchClient, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &httpBatchClient{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}, nil
}

func (c *httpBatchClient) send(ctx context.Context, msg outreach.BatchMessage, addresses []string) ([]outreach.Result, error) {
	payload, err := json.Marshal(batchRequest{
		From:     msg.From,
		FromName: msg.FromName,
		Subject:  msg.Subject,
		Body:     msg.Body,
		To:       addresses,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var decoded batchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return decoded.Results, nil
}

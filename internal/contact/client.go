package contact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Sender delivers a payload and reports how the request settled.
type Sender interface {
	Submit(ctx context.Context, p Payload) error
}

// Client posts payloads to a single configured endpoint.
// It never retries and sets no timeout of its own.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a Client for endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit sends p as one JSON POST. A nil error means the endpoint answered 2xx.
// Non-2xx answers return *ApplicationError; anything that prevented a response
// returns *TransportError. The response body is discarded unread.
func (c *Client) Submit(ctx context.Context, p Payload) error {
	body, err := p.Encode()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ApplicationError{StatusCode: resp.StatusCode}
	}
	return nil
}

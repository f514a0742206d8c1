// Package client posts signup payloads to the newsletter endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-signup/pkg/signup"
)

// DefaultEndpoint is the signup endpoint used when none is configured.
const DefaultEndpoint = "http://localhost:3000/newsletter-signup"

// RequestIDHeader carries a per-request identifier.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of a response body is read for error messages.
const maxErrorBody = 1 << 20

// Client implements signup.Submitter over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	requestID  func() string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint sets the URL payloads are posted to.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds each request. Zero disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestIDFunc overrides the X-Request-ID generator.
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

// New returns a client posting to DefaultEndpoint unless configured
// otherwise.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Endpoint returns the configured endpoint.
func (c *Client) Endpoint() string { return c.endpoint }

type errorBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Submit posts payload as JSON. Any HTTP response, including non-2xx, is
// reported through Response; the error is reserved for requests that never
// got one.
func (c *Client) Submit(ctx context.Context, payload signup.Payload) (signup.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return signup.Response{}, fmt.Errorf("client: encode payload: %w", err)
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return signup.Response{}, fmt.Errorf("client: build request: %w", err)
	}
	requestID := c.requestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("signup request failed", "endpoint", c.endpoint, "request_id", requestID, "error", err)
		return signup.Response{}, fmt.Errorf("client: post %s: %w", c.endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Debug("signup request",
		"endpoint", c.endpoint,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started),
	)

	out := signup.Response{Status: resp.StatusCode}
	if out.Succeeded() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return out, nil
	}
	out.ErrorMessages = decodeMessages(io.LimitReader(resp.Body, maxErrorBody))
	return out, nil
}

// decodeMessages extracts errors[].message in order, as sent. Empty or
// non-JSON bodies yield no messages.
func decodeMessages(r io.Reader) []string {
	var parsed errorBody
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return nil
	}
	out := make([]string, 0, len(parsed.Errors))
	for _, item := range parsed.Errors {
		out = append(out, item.Message)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

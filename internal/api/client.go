// Package api is the REST collaborator: a thin JSON-over-HTTP client for the
// marketplace backend. It injects the bearer token on every outgoing request
// and treats a 401 outside the auth endpoints as an expired session.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenSource yields the current bearer token, or an empty string when the
// caller is not authenticated. The session store implements it.
type TokenSource interface {
	Token() string
}

// Client talks to the marketplace REST API.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	tokenSource      TokenSource
	onSessionExpired func()
	logger           *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets the bearer token provider.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokenSource = ts }
}

// WithSessionExpiredHook registers a callback invoked when a non-auth request
// comes back 401. The hook runs at most once per failing request, before the
// error is returned to the caller.
func WithSessionExpiredHook(hook func()) Option {
	return func(c *Client) { c.onSessionExpired = hook }
}

// NewClient creates a REST client for the given base URL.
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource replaces the bearer token provider. Used when the session
// store is constructed after the client.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokenSource = ts
}

// SetSessionExpiredHook replaces the 401 hook.
func (c *Client) SetSessionExpiredHook(hook func()) {
	c.onSessionExpired = hook
}

// doJSON sends a request with an optional JSON body and decodes the JSON
// response into out (which may be nil for empty responses).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send finishes request preparation, executes it and decodes the response.
func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokenSource != nil {
		if token := c.tokenSource.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("API request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode == http.StatusUnauthorized && !isAuthPath(req.URL.Path) {
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// isAuthPath reports whether the request targets an auth endpoint, where a
// 401 means bad credentials rather than an expired session.
func isAuthPath(path string) bool {
	return strings.Contains(path, "/auth/")
}

// decodeError turns a non-2xx response into an *APIError, preferring the
// server-provided message.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(raw) > 0 {
		var body errorBody
		if jsonErr := json.Unmarshal(raw, &body); jsonErr == nil {
			if body.Message != "" {
				apiErr.Message = body.Message
			} else if body.Error != "" {
				apiErr.Message = body.Error
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fallbackMessage(resp.StatusCode)
	}
	return apiErr
}

// Package genie is the REST client for the remote Genie API: space CRUD,
// conversations, messages, and query results. It owns the error taxonomy
// for remote failures and the typed response schema for the protocol.
package genie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/geniespace/genie-mcp/internal/config"
)

const apiPrefix = "/api/2.0/genie"

// retryBaseDelay is the pause before the first GET retry; subsequent
// retries back off linearly. Variable so tests can shorten it.
var retryBaseDelay = 250 * time.Millisecond

// Client talks to one workspace. It is safe for concurrent use; all
// state is immutable after construction except the OAuth token cache,
// which synchronizes internally.
type Client struct {
	host       string
	httpClient *http.Client
	auth       authProvider
	maxRetries int
	logger     *zap.Logger
}

// NewClient builds a client from the loaded configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	var auth authProvider
	if cfg.UsesOAuth() {
		auth = newOAuthAuth(cfg.Host, cfg.ClientID, cfg.ClientSecret, httpClient)
	} else {
		auth = &tokenAuth{token: cfg.Token}
	}
	return &Client{
		host:       strings.TrimRight(cfg.Host, "/"),
		httpClient: httpClient,
		auth:       auth,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// do performs one JSON round trip against the Genie API. Non-2xx
// responses are translated into the error taxonomy; out may be nil when
// the response body is ignored.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.doPath(ctx, method, apiPrefix+path, query, body, out)
}

// doPath is do without the Genie prefix, for the few endpoints that live
// under another API root. Transient failures of idempotent requests are
// retried.
func (c *Client) doPath(ctx context.Context, method, path string, query url.Values, body, out any) error {
	attempts := 1
	if method == http.MethodGet && c.maxRetries > 0 {
		attempts += c.maxRetries
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(time.Duration(attempt) * retryBaseDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		var retryable bool
		retryable, err = c.roundTrip(ctx, method, path, query, body, out)
		if err == nil || !retryable {
			return err
		}
		c.logger.Debug("retrying genie api call",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return err
}

// roundTrip performs a single HTTP exchange. retryable reports whether
// the failure was transient (transport error or 5xx).
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body, out any) (retryable bool, _ error) {
	u := c.host + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return false, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.auth.authorize(ctx, req); err != nil {
		return false, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, translateError(0, err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return true, fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("genie api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode >= 500, translateError(resp.StatusCode, errorMessage(data, resp.StatusCode))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return false, fmt.Errorf("parsing response: %w", err)
		}
	}
	return false, nil
}

// errorMessage extracts the platform's error message from a failure
// body, falling back to the raw body or the status text.
func errorMessage(body []byte, statusCode int) string {
	var payload struct {
		Message   string `json:"message"`
		ErrorCode string `json:"error_code"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		if payload.ErrorCode != "" {
			return payload.ErrorCode + ": " + payload.Message
		}
		return payload.Message
	}
	if len(body) > 0 {
		return string(body)
	}
	return http.StatusText(statusCode)
}

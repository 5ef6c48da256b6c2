package backend

// Package backend is the REST client for the remote dashboard backend.
// It is the only place transport-level outcomes are interpreted; callers
// receive typed results or errors from the closed set in errors.go.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout    = 60 * time.Second
	defaultMaxRetries = 2
	defaultRetryDelay = time.Second
	maxBodyBytes      = 1 << 20
)

// Config controls the backend client.
type Config struct {
	// BaseURL is the backend API root, e.g. "http://localhost:3000/api".
	BaseURL string

	// Timeout bounds each HTTP attempt. Defaults to 60s.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts after a
	// connection-level failure (no HTTP response). Defaults to 2.
	MaxRetries int

	// RetryDelay is the fixed pause between attempts. Defaults to 1s.
	RetryDelay time.Duration

	// HTTPClient overrides the underlying client (tests). When set, its
	// own timeout wins.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client performs HTTP calls against the backend and classifies their
// outcomes. It is stateless apart from configuration and safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewClient validates config and constructs a Client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend: BaseURL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	retries := cfg.MaxRetries
	if retries < 0 {
		retries = defaultMaxRetries
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		maxRetries: retries,
		retryDelay: delay,
		logger:     logger,
	}, nil
}

// request groups the parameters of one backend call.
type request struct {
	method string
	path   string
	token  string
	body   any
}

// do performs the request with bounded retries for connection-level
// failures. A non-nil *http.Response means the backend answered, whatever
// the status; a nil response with an error means no HTTP response was
// received after all attempts.
func (c *Client) do(ctx context.Context, req request) (*http.Response, error) {
	var payload []byte
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.WarnContext(ctx, "retrying backend request",
				"method", req.method, "path", req.path, "attempt", attempt, "error", lastErr)
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		httpReq.Header.Set("Accept", "application/json")
		if req.body != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
		if req.token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+req.token)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		// Give up immediately when the caller is gone.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// call performs a request expecting a 2xx JSON response and decodes it
// into dst (nil dst discards the body). Common failure statuses map to
// the package's error set so handlers can react uniformly.
func (c *Client) call(ctx context.Context, req request, dst any) error {
	resp, err := c.do(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		discard(resp)
		return ErrUnauthorized
	case resp.StatusCode == http.StatusBadRequest:
		if msg, ok := errorMessage(resp); ok {
			return &ValidationError{Message: msg}
		}
		return fmt.Errorf("%w: bad request", ErrServer)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		discard(resp)
		return fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	}

	if dst == nil {
		discard(resp)
		return nil
	}
	return decodeInto(resp, dst)
}

// decodeInto drains the response body into dst, tolerating nothing.
func decodeInto(resp *http.Response, dst any) error {
	defer discard(resp)
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// discard drains and closes the body so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
}

// errorMessage extracts the "message" field of an error payload, which
// the backend sends either as a string or as a list of strings (first
// element wins). ok is false when no usable message is present.
func errorMessage(resp *http.Response) (string, bool) {
	defer discard(resp)
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", false
	}

	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || len(envelope.Message) == 0 {
		return "", false
	}

	var single string
	if err := json.Unmarshal(envelope.Message, &single); err == nil && single != "" {
		return single, true
	}

	var many []string
	if err := json.Unmarshal(envelope.Message, &many); err == nil && len(many) > 0 && many[0] != "" {
		return many[0], true
	}

	return "", false
}

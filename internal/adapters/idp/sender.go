package idp

// Package idp talks to the external identity provider's REST API for the
// flows the backend does not own, currently just password-reset emails.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const requestTypePasswordReset = "PASSWORD_RESET"

// ErrEmailNotFound is returned when the provider reports no account for
// the address. Handlers usually hide this from the visitor to avoid
// account enumeration.
var ErrEmailNotFound = errors.New("email not found")

// Config controls the sender.
type Config struct {
	// BaseURL is the provider's accounts API root.
	BaseURL string

	// APIKey is appended as the `key` query parameter.
	APIKey string

	// Timeout bounds each request. Defaults to 15s.
	Timeout time.Duration

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Sender implements ports.PasswordResetSender over the provider's
// sendOobCode endpoint.
type Sender struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSender validates config and constructs a Sender.
func NewSender(cfg Config) (*Sender, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("idp: BaseURL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("idp: APIKey is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Sender{
		endpoint:   base + "/accounts:sendOobCode?key=" + url.QueryEscape(cfg.APIKey),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// SendPasswordReset asks the provider to email a reset link.
func (s *Sender) SendPasswordReset(ctx context.Context, email string) error {
	payload, err := json.Marshal(map[string]string{
		"requestType": requestTypePasswordReset,
		"email":       email,
	})
	if err != nil {
		return fmt.Errorf("encode reset request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build reset request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send reset request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	code := providerErrorCode(resp.Body)
	if code == "EMAIL_NOT_FOUND" {
		return ErrEmailNotFound
	}

	s.logger.WarnContext(ctx, "password reset request rejected",
		"status", resp.StatusCode, "code", code)
	return fmt.Errorf("identity provider returned status %d", resp.StatusCode)
}

// providerErrorCode extracts the provider's error.message code, e.g.
// "EMAIL_NOT_FOUND" or "INVALID_EMAIL". Empty when unparseable.
func providerErrorCode(body io.Reader) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return ""
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	return envelope.Error.Message
}

package backend

import (
	"context"
	"fmt"
	"net/http"

	domainauth "github.com/brandreach/ambassador-ui-api/internal/domain/auth"
)

// Gateway implements ports.AuthGateway against the backend's auth
// endpoints. Every outcome is classified into the closed error set; raw
// transport errors never cross this boundary.
type Gateway struct {
	client *Client
}

// NewGateway wraps an existing backend client.
func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

// loginResponse mirrors the backend's successful login payload.
type loginResponse struct {
	UID         string          `json:"uid"`
	Email       string          `json:"email"`
	Role        domainauth.Role `json:"role"`
	AccessToken string          `json:"accessToken"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
}

// Login exchanges an email/password pair for a bearer token and identity.
//
// Classification:
//   - HTTP 401: ErrInvalidCredentials
//   - HTTP 400 with a message payload: *ValidationError
//   - anything else (no response, 5xx, malformed body): ErrServer
func (g *Gateway) Login(ctx context.Context, email, password string) (domainauth.CredentialRecord, error) {
	var zero domainauth.CredentialRecord

	resp, err := g.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": email, "password": password},
	})
	if err != nil {
		g.client.logger.ErrorContext(ctx, "login request failed", "error", err)
		return zero, ErrServer
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		discard(resp)
		return zero, ErrInvalidCredentials
	case resp.StatusCode == http.StatusBadRequest:
		if msg, ok := errorMessage(resp); ok {
			return zero, &ValidationError{Message: msg}
		}
		return zero, ErrServer
	case resp.StatusCode != http.StatusOK:
		discard(resp)
		g.client.logger.ErrorContext(ctx, "login returned unexpected status", "status", resp.StatusCode)
		return zero, ErrServer
	}

	var body loginResponse
	if err := decodeInto(resp, &body); err != nil {
		g.client.logger.ErrorContext(ctx, "login response malformed", "error", err)
		return zero, ErrServer
	}

	rec := domainauth.CredentialRecord{
		Token: body.AccessToken,
		Identity: domainauth.Identity{
			SubjectID: body.UID,
			Email:     body.Email,
			Role:      body.Role,
			FirstName: body.FirstName,
			LastName:  body.LastName,
		},
	}
	if !rec.Complete() {
		g.client.logger.ErrorContext(ctx, "login response missing token or identity fields", "role", string(body.Role))
		return zero, ErrServer
	}
	return rec, nil
}

// VerifyRole asks the backend who the bearer token belongs to.
//
// Classification:
//   - HTTP 401: ErrUnauthorized (the only outcome authoritative enough
//     to invalidate a session)
//   - no HTTP response received: ErrNetwork
//   - anything else (5xx, malformed body, untrusted identity):
//     ErrVerificationFailed
func (g *Gateway) VerifyRole(ctx context.Context, token string) (domainauth.Identity, error) {
	var zero domainauth.Identity

	resp, err := g.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/auth/verify-role",
		token:  token,
	})
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		discard(resp)
		return zero, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		discard(resp)
		return zero, fmt.Errorf("%w: status %d", ErrVerificationFailed, resp.StatusCode)
	}

	var identity domainauth.Identity
	if err := decodeInto(resp, &identity); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	if !identity.Trusted() {
		return zero, fmt.Errorf("%w: incomplete identity", ErrVerificationFailed)
	}
	return identity, nil
}

// Logout notifies the backend that the token's session ended. Best
// effort: callers log failures and proceed with local teardown.
func (g *Gateway) Logout(ctx context.Context, token string) error {
	resp, err := g.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/logout",
		token:  token,
	})
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	defer discard(resp)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("logout returned status %d", resp.StatusCode)
	}
	return nil
}

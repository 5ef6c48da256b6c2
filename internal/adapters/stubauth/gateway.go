package stubauth

// Package stubauth is a config-driven AuthGateway for local development.
// It mints and validates its own HS256 tokens so the dashboard can run
// without a reachable backend.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/brandreach/ambassador-ui-api/internal/adapters/backend"
	domainauth "github.com/brandreach/ambassador-ui-api/internal/domain/auth"
	"github.com/brandreach/ambassador-ui-api/internal/ports"
)

// User is one account the stub authority accepts.
type User struct {
	Email     string
	Password  string
	Role      domainauth.Role
	FirstName string
	LastName  string
}

// Config controls the stub gateway.
type Config struct {
	// Secret signs the stub tokens. Required.
	Secret []byte

	// TokenTTL bounds token validity. Defaults to 8h.
	TokenTTL time.Duration

	// Users are the accepted accounts, keyed by email at construction.
	Users []User
}

type account struct {
	password string
	identity domainauth.Identity
}

// Gateway implements ports.AuthGateway entirely in process. Failure
// classification matches the real backend gateway so callers cannot tell
// the difference.
type Gateway struct {
	secret   []byte
	tokenTTL time.Duration
	accounts map[string]account
}

type claims struct {
	Email     string          `json:"email"`
	Role      domainauth.Role `json:"role"`
	FirstName string          `json:"firstName,omitempty"`
	LastName  string          `json:"lastName,omitempty"`
	jwt.RegisteredClaims
}

// NewGateway constructs the stub authority. Each user gets a stable
// generated subject ID for the lifetime of the process.
func NewGateway(cfg Config) (*Gateway, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("stubauth: Secret is required")
	}
	if len(cfg.Users) == 0 {
		return nil, errors.New("stubauth: at least one user is required")
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}

	accounts := make(map[string]account, len(cfg.Users))
	for _, u := range cfg.Users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		if email == "" || u.Password == "" {
			return nil, fmt.Errorf("stubauth: user %q needs email and password", u.Email)
		}
		if !u.Role.Valid() {
			return nil, fmt.Errorf("stubauth: user %q has unknown role %q", u.Email, u.Role)
		}
		accounts[email] = account{
			password: u.Password,
			identity: domainauth.Identity{
				SubjectID: "stub-" + uuid.NewString(),
				Email:     email,
				Role:      u.Role,
				FirstName: u.FirstName,
				LastName:  u.LastName,
			},
		}
	}

	return &Gateway{secret: cfg.Secret, tokenTTL: ttl, accounts: accounts}, nil
}

// Login checks the pair against the configured users and mints a token.
func (g *Gateway) Login(_ context.Context, email, password string) (domainauth.CredentialRecord, error) {
	var zero domainauth.CredentialRecord

	acct, ok := g.accounts[strings.ToLower(strings.TrimSpace(email))]
	if !ok || acct.password != password {
		return zero, backend.ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email:     acct.identity.Email,
		Role:      acct.identity.Role,
		FirstName: acct.identity.FirstName,
		LastName:  acct.identity.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.identity.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.tokenTTL)),
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(g.secret)
	if err != nil {
		return zero, backend.ErrServer
	}

	return domainauth.CredentialRecord{Token: signed, Identity: acct.identity}, nil
}

// VerifyRole validates the token signature and expiry and rebuilds the
// identity from the claims. Invalid or expired tokens report
// backend.ErrUnauthorized, exactly like the real authority's 401.
func (g *Gateway) VerifyRole(_ context.Context, token string) (domainauth.Identity, error) {
	var zero domainauth.Identity

	var cl claims
	parsed, err := jwt.ParseWithClaims(token, &cl, func(*jwt.Token) (any, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return zero, backend.ErrUnauthorized
	}

	identity := domainauth.Identity{
		SubjectID: cl.Subject,
		Email:     cl.Email,
		Role:      cl.Role,
		FirstName: cl.FirstName,
		LastName:  cl.LastName,
	}
	if !identity.Trusted() {
		return zero, backend.ErrUnauthorized
	}
	return identity, nil
}

// Logout is a no-op: stub tokens simply expire.
func (g *Gateway) Logout(context.Context, string) error { return nil }

var _ ports.AuthGateway = (*Gateway)(nil)

package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/brandreach/ambassador-ui-api/internal/domain/auth"
)

// ErrNoCredentials is returned by CredentialStore.Load when no complete,
// well-formed token+identity pair exists for the session.
var ErrNoCredentials = errors.New("no credentials")

// CredentialStore persists the token+identity pair for one browser
// session. Save overwrites the pair atomically; Load yields the pair only
// when both halves are present and well-formed (partial or malformed
// state is reported as ErrNoCredentials, never as a parse failure);
// Clear removes both halves and is idempotent. The store performs no
// network validation of the token — that is the gateway's job.
type CredentialStore interface {
	Save(ctx context.Context, sessionID string, rec domainauth.CredentialRecord) error
	Load(ctx context.Context, sessionID string) (domainauth.CredentialRecord, error)
	Clear(ctx context.Context, sessionID string) error
}

// AuthGateway wraps the remote authority's authentication endpoints.
// Implementations translate transport outcomes into the closed error set
// in internal/adapters/backend and never mutate session state.
type AuthGateway interface {
	// Login exchanges credentials for a bearer token and identity.
	Login(ctx context.Context, email, password string) (domainauth.CredentialRecord, error)

	// VerifyRole asks the authority who the bearer token belongs to.
	VerifyRole(ctx context.Context, token string) (domainauth.Identity, error)

	// Logout notifies the authority that the token's session ended.
	// Callers must treat failures as non-blocking.
	Logout(ctx context.Context, token string) error
}

// PasswordResetSender asks the third-party identity provider to email a
// password-reset link. The provider is external; only its request and
// response contract matter here.
type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email string) error
}

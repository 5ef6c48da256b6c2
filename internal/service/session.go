package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/brandreach/ambassador-ui-api/internal/adapters/backend"
	domainauth "github.com/brandreach/ambassador-ui-api/internal/domain/auth"
	"github.com/brandreach/ambassador-ui-api/internal/observability/metrics"
	"github.com/brandreach/ambassador-ui-api/internal/observability/statsd"
	"github.com/brandreach/ambassador-ui-api/internal/ports"
)

// defaultRemoteLogoutTimeout bounds the detached backend logout call so a
// slow authority can never hold up local teardown.
const defaultRemoteLogoutTimeout = 10 * time.Second

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Store   ports.CredentialStore
	Gateway ports.AuthGateway
	Logger  *slog.Logger
	Metrics statsd.Sink

	// RemoteLogoutTimeout overrides the bound on the detached backend
	// logout call. Zero keeps the default.
	RemoteLogoutTimeout time.Duration
}

// SessionService owns the lifecycle of browser sessions: hydrating them
// from the credential store, establishing them at login, and tearing them
// down at logout. It is the only writer of credential state.
type SessionService struct {
	store         ports.CredentialStore
	gateway       ports.AuthGateway
	logger        *slog.Logger
	metrics       statsd.Sink
	logoutTimeout time.Duration
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.RemoteLogoutTimeout
	if timeout <= 0 {
		timeout = defaultRemoteLogoutTimeout
	}
	return &SessionService{
		store:         opts.Store,
		gateway:       opts.Gateway,
		logger:        logger,
		metrics:       opts.Metrics,
		logoutTimeout: timeout,
	}
}

// Hydrate builds the session view for one request. A missing, partial, or
// malformed credential record yields an unauthenticated session rather
// than an error: the visitor is simply not logged in. Store transport
// failures are logged and also degrade to unauthenticated, so a Redis
// blip reads as "logged out" instead of a 500.
func (s *SessionService) Hydrate(ctx context.Context, sessionID string) *domainauth.Session {
	sess := &domainauth.Session{ID: sessionID}
	if sessionID == "" {
		return sess
	}

	rec, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ports.ErrNoCredentials) {
			s.logger.ErrorContext(ctx, "load credentials failed", "error", err)
		}
		return sess
	}

	identity := rec.Identity
	sess.Identity = &identity
	return sess
}

// Token returns the session's bearer token for backend calls, or
// ErrNoCredentials when the session holds none.
func (s *SessionService) Token(ctx context.Context, sessionID string) (string, error) {
	rec, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return rec.Token, nil
}

// Establish logs the visitor in: it exchanges the credentials with the
// authority, mints a fresh session ID, and persists the token+identity
// pair. Gateway errors pass through unchanged so handlers can
// distinguish rejected credentials from validation messages and outages.
func (s *SessionService) Establish(ctx context.Context, email, password string) (*domainauth.Session, error) {
	start := time.Now()
	rec, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		metrics.EmitLogin(s.metrics, metrics.LoginMetric{Result: loginResult(err), Duration: time.Since(start)})
		return nil, err
	}
	metrics.EmitLogin(s.metrics, metrics.LoginMetric{Result: "success", Duration: time.Since(start)})

	sessionID := uuid.New().String()
	if err := s.store.Save(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}

	s.logger.InfoContext(ctx, "session established",
		"session_id", sessionID, "role", string(rec.Identity.Role))

	identity := rec.Identity
	return &domainauth.Session{ID: sessionID, Identity: &identity}, nil
}

// Refresh overwrites the session's stored identity with a freshly
// verified one, keeping the token. Used when the authority reports a
// different role than the cached copy.
func (s *SessionService) Refresh(ctx context.Context, sessionID string, identity domainauth.Identity) error {
	rec, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	rec.Identity = identity
	return s.store.Save(ctx, sessionID, rec)
}

// Logout tears the session down. Local state is cleared unconditionally
// and immediately; the authority is notified on a detached, bounded call
// whose failure only gets logged. Logging out an already-logged-out
// session is a no-op.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	rec, err := s.store.Load(ctx, sessionID)
	if err != nil && !errors.Is(err, ports.ErrNoCredentials) {
		s.logger.ErrorContext(ctx, "load credentials for logout failed", "error", err)
	}

	if err == nil && rec.Token != "" {
		s.notifyRemoteLogout(rec.Token)
	}

	if err := s.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}

	metrics.EmitLogout(s.metrics)
	s.logger.InfoContext(ctx, "session ended", "session_id", sessionID)
	return nil
}

// loginResult maps a login failure onto the metric tag vocabulary.
func loginResult(err error) string {
	switch {
	case errors.Is(err, backend.ErrInvalidCredentials):
		return "rejected"
	default:
		if _, ok := backend.AsValidation(err); ok {
			return "validation"
		}
		return "error"
	}
}

// notifyRemoteLogout tells the authority the token is done, off the
// request path. The context is detached so the call survives the
// response being written, and bounded so it cannot linger.
func (s *SessionService) notifyRemoteLogout(token string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.logoutTimeout)
		defer cancel()

		if err := s.gateway.Logout(ctx, token); err != nil {
			s.logger.WarnContext(ctx, "remote logout failed", "error", err)
		}
	}()
}

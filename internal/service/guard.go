package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/brandreach/ambassador-ui-api/internal/adapters/backend"
	domainauth "github.com/brandreach/ambassador-ui-api/internal/domain/auth"
	"github.com/brandreach/ambassador-ui-api/internal/observability/metrics"
	"github.com/brandreach/ambassador-ui-api/internal/observability/statsd"
	"github.com/brandreach/ambassador-ui-api/internal/ports"
)

const defaultVerifyTimeout = 65 * time.Second

// attemptMapLimit caps the verification-attempt set; when exceeded the
// set resets wholesale, which only costs a few redundant verifications.
const attemptMapLimit = 16384

// GuardServiceOptions groups dependencies for GuardService.
type GuardServiceOptions struct {
	Gateway  ports.AuthGateway
	Sessions *SessionService
	Logger   *slog.Logger
	Metrics  statsd.Sink

	// VerifyTimeout bounds detached background verifications. Zero keeps
	// the default, which sits just above the transport timeout.
	VerifyTimeout time.Duration
}

// GuardService decides admission to protected views. The cached identity
// is trusted optimistically: when its role is allowed the request is
// admitted immediately and the authority is consulted off the request
// path, where it can only escalate to a denial of future requests. When
// the cached role is not allowed, one synchronous second-chance
// verification may still admit; every other outcome on that path denies.
//
// The two branches deliberately treat a network failure differently:
// the optimistic branch keeps its admission (availability during an
// outage), the fallback branch denies (the local check already failed
// and nothing confirmed it). See the package tests for both.
type GuardService struct {
	gateway       ports.AuthGateway
	sessions      *SessionService
	logger        *slog.Logger
	metrics       statsd.Sink
	verifyTimeout time.Duration

	group singleflight.Group

	// attempted tracks which (session, identity, allowed-role-set) tuples
	// have already spent their single verification. The key embeds the
	// identity, so a role refresh or re-login naturally re-arms the
	// guard.
	mu        sync.Mutex
	attempted map[string]struct{}
}

// NewGuardService constructs a new GuardService.
func NewGuardService(opts GuardServiceOptions) *GuardService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.VerifyTimeout
	if timeout <= 0 {
		timeout = defaultVerifyTimeout
	}
	return &GuardService{
		gateway:       opts.Gateway,
		sessions:      opts.Sessions,
		logger:        logger,
		metrics:       opts.Metrics,
		verifyTimeout: timeout,
		attempted:     make(map[string]struct{}),
	}
}

// Authorize evaluates one request against the view's allowed-role set.
// It never returns DecisionPending.
func (g *GuardService) Authorize(ctx context.Context, sess *domainauth.Session, allowed domainauth.RoleSet) domainauth.Decision {
	if !sess.Authenticated() {
		g.emitDecision(domainauth.DecisionDeniedUnauthenticated, "no_identity")
		return domainauth.DecisionDeniedUnauthenticated
	}

	if allowed.Contains(sess.Identity.Role) {
		g.verifyInBackground(*sess, allowed)
		g.emitDecision(domainauth.DecisionAdmitted, "local_role")
		return domainauth.DecisionAdmitted
	}

	return g.secondChance(ctx, sess, allowed)
}

// verifyInBackground spends the tuple's verification attempt, if still
// available, on a detached call that can only affect future requests.
func (g *GuardService) verifyInBackground(sess domainauth.Session, allowed domainauth.RoleSet) {
	key := attemptKey(sess, allowed)
	if !g.claimAttempt(key) {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), g.verifyTimeout)
		defer cancel()

		identity, err := g.verifyOnce(ctx, key, sess.ID)
		switch {
		case err == nil && allowed.Contains(identity.Role):
			g.emitVerification("confirmed")
		case err == nil:
			// Authoritative: the authority reports a role this view does
			// not allow.
			g.logger.WarnContext(ctx, "background verification revoked admission",
				"session_id", sess.ID, "cached_role", string(sess.Identity.Role), "fresh_role", string(identity.Role))
			g.emitVerification("role_mismatch")
			g.endSession(ctx, sess.ID)
		case errors.Is(err, backend.ErrUnauthorized):
			g.logger.WarnContext(ctx, "background verification rejected token", "session_id", sess.ID)
			g.emitVerification("unauthorized")
			g.endSession(ctx, sess.ID)
		case errors.Is(err, backend.ErrNetwork):
			// Non-authoritative. The admission stands on the local cache.
			g.logger.WarnContext(ctx, "background verification unreachable", "session_id", sess.ID, "error", err)
			g.emitVerification("network_error")
		default:
			g.logger.WarnContext(ctx, "background verification failed", "session_id", sess.ID, "error", err)
			g.emitVerification("failed")
		}
	}()
}

// secondChance handles a local role mismatch: one synchronous
// verification may still admit when the cached identity is stale. Every
// other outcome, a network failure included, ends the session.
func (g *GuardService) secondChance(ctx context.Context, sess *domainauth.Session, allowed domainauth.RoleSet) domainauth.Decision {
	key := attemptKey(*sess, allowed)
	if !g.claimAttempt(key) {
		g.emitDecision(domainauth.DecisionDeniedForbidden, "attempt_spent")
		return domainauth.DecisionDeniedForbidden
	}

	identity, err := g.verifyOnce(ctx, key, sess.ID)
	if err == nil && allowed.Contains(identity.Role) {
		if refreshErr := g.sessions.Refresh(ctx, sess.ID, identity); refreshErr != nil {
			g.logger.ErrorContext(ctx, "refresh identity failed", "session_id", sess.ID, "error", refreshErr)
		}
		fresh := identity
		sess.Identity = &fresh
		g.emitVerification("refreshed")
		g.emitDecision(domainauth.DecisionAdmitted, "second_chance")
		return domainauth.DecisionAdmitted
	}

	if err != nil {
		g.logger.WarnContext(ctx, "second-chance verification failed",
			"session_id", sess.ID, "error", err)
		g.emitVerification("failed")
	} else {
		g.emitVerification("role_mismatch")
	}

	g.endSession(ctx, sess.ID)
	g.emitDecision(domainauth.DecisionDeniedForbidden, "second_chance")
	return domainauth.DecisionDeniedForbidden
}

// verifyOnce performs the remote check, collapsing concurrent calls for
// the same tuple into one flight.
func (g *GuardService) verifyOnce(ctx context.Context, key, sessionID string) (domainauth.Identity, error) {
	v, err, _ := g.group.Do(key, func() (any, error) {
		token, err := g.sessions.Token(ctx, sessionID)
		if err != nil {
			return domainauth.Identity{}, backend.ErrUnauthorized
		}
		return g.gateway.VerifyRole(ctx, token)
	})
	if err != nil {
		return domainauth.Identity{}, err
	}
	return v.(domainauth.Identity), nil
}

// endSession converges an authoritative denial onto the logout path:
// clear the stored pair, notify the authority. Idempotent, so racing
// denials are harmless.
func (g *GuardService) endSession(ctx context.Context, sessionID string) {
	if err := g.sessions.Logout(ctx, sessionID); err != nil {
		g.logger.ErrorContext(ctx, "end session after denial failed", "session_id", sessionID, "error", err)
	}
}

// claimAttempt records the tuple's single verification attempt. It
// returns false when the attempt was already spent.
func (g *GuardService) claimAttempt(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, done := g.attempted[key]; done {
		return false
	}
	if len(g.attempted) >= attemptMapLimit {
		g.attempted = make(map[string]struct{})
	}
	g.attempted[key] = struct{}{}
	return true
}

func attemptKey(sess domainauth.Session, allowed domainauth.RoleSet) string {
	return strings.Join([]string{
		sess.ID,
		sess.Identity.SubjectID,
		string(sess.Identity.Role),
		allowed.Key(),
	}, "|")
}

func (g *GuardService) emitDecision(d domainauth.Decision, reason string) {
	metrics.EmitGuardDecision(g.metrics, metrics.GuardDecisionMetric{
		Decision: d.String(),
		Reason:   reason,
	})
}

func (g *GuardService) emitVerification(outcome string) {
	metrics.EmitRoleVerification(g.metrics, outcome)
}

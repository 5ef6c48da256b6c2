package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandreach/ambassador-ui-api/internal/adapters/backend"
	domainauth "github.com/brandreach/ambassador-ui-api/internal/domain/auth"
	mocks "github.com/brandreach/ambassador-ui-api/internal/mocks/auth"
)

type guardFixture struct {
	store    *mocks.MemoryCredentialStore
	gateway  *mocks.MockAuthGateway
	sessions *SessionService
	guard    *GuardService
}

func newGuardFixture() *guardFixture {
	store := mocks.NewMemoryCredentialStore()
	gateway := mocks.NewMockAuthGateway()
	sessions := NewSessionService(SessionServiceOptions{
		Store:               store,
		Gateway:             gateway,
		RemoteLogoutTimeout: time.Second,
	})
	guard := NewGuardService(GuardServiceOptions{
		Gateway:       gateway,
		Sessions:      sessions,
		VerifyTimeout: time.Second,
	})
	return &guardFixture{store: store, gateway: gateway, sessions: sessions, guard: guard}
}

// login establishes a session with the given role and returns it.
func (f *guardFixture) login(t *testing.T, role domainauth.Role) *domainauth.Session {
	t.Helper()
	f.gateway.DefaultIdentity.Role = role
	sess, err := f.sessions.Establish(context.Background(), "mock.user@example.com", "pw")
	require.NoError(t, err)
	return sess
}

func allow(roles ...domainauth.Role) domainauth.RoleSet { return domainauth.RoleSet(roles) }

func TestGuard_NoIdentityDeniesWithoutVerifying(t *testing.T) {
	f := newGuardFixture()

	anonymous := &domainauth.Session{ID: "sess-1"}
	decision := f.guard.Authorize(context.Background(), anonymous, allow(domainauth.RoleAdmin))

	assert.Equal(t, domainauth.DecisionDeniedUnauthenticated, decision)
	assert.Zero(t, f.gateway.VerifyCalls(), "denial without identity must not consult the authority")
}

func TestGuard_LocalMatchAdmitsImmediately(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAdmin)

	verified := make(chan struct{}, 1)
	f.gateway.VerifyFunc = func(context.Context, string) (domainauth.Identity, error) {
		verified <- struct{}{}
		return f.gateway.DefaultIdentity, nil
	}

	decision := f.guard.Authorize(context.Background(), sess, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionAdmitted, decision)

	select {
	case <-verified:
	case <-time.After(time.Second):
		t.Fatal("admission never triggered a background verification")
	}
	assert.True(t, f.store.Has(sess.ID), "confirmed admission keeps the credentials")
}

func TestGuard_OneVerificationPerSessionAndRoleSet(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAdmin)

	verified := make(chan struct{}, 8)
	f.gateway.VerifyFunc = func(context.Context, string) (domainauth.Identity, error) {
		verified <- struct{}{}
		return f.gateway.DefaultIdentity, nil
	}

	for range 3 {
		hydrated := f.sessions.Hydrate(context.Background(), sess.ID)
		assert.Equal(t, domainauth.DecisionAdmitted,
			f.guard.Authorize(context.Background(), hydrated, allow(domainauth.RoleAdmin)))
	}

	select {
	case <-verified:
	case <-time.After(time.Second):
		t.Fatal("no verification happened")
	}
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), f.gateway.VerifyCalls(), "repeat requests must not re-verify")

	// A different allowed-role set re-arms the guard.
	hydrated := f.sessions.Hydrate(context.Background(), sess.ID)
	f.guard.Authorize(context.Background(), hydrated, allow(domainauth.RoleAdmin, domainauth.RoleSuperadmin))
	assert.Eventually(t, func() bool { return f.gateway.VerifyCalls() == 2 },
		time.Second, 5*time.Millisecond)
}

func TestGuard_BackgroundNetworkFailureKeepsAdmission(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAdmin)
	f.gateway.Unreachable()

	decision := f.guard.Authorize(context.Background(), sess, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionAdmitted, decision)

	assert.Eventually(t, func() bool { return f.gateway.VerifyCalls() == 1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	assert.True(t, f.store.Has(sess.ID), "an outage must not cost the user their session")
	assert.Zero(t, f.gateway.LogoutCalls())
}

func TestGuard_BackgroundAmbiguousFailureKeepsAdmission(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAdmin)
	f.gateway.RejectVerify(backend.ErrVerificationFailed)

	decision := f.guard.Authorize(context.Background(), sess, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionAdmitted, decision)

	assert.Eventually(t, func() bool { return f.gateway.VerifyCalls() == 1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.True(t, f.store.Has(sess.ID))
}

func TestGuard_BackgroundUnauthorizedEndsSession(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAdmin)
	f.gateway.RejectVerify(backend.ErrUnauthorized)

	decision := f.guard.Authorize(context.Background(), sess, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionAdmitted, decision, "current request stays admitted")

	assert.Eventually(t, func() bool { return !f.store.Has(sess.ID) },
		time.Second, 5*time.Millisecond, "revoked token must clear the credentials")

	// The next request hydrates to anonymous and is turned away.
	hydrated := f.sessions.Hydrate(context.Background(), sess.ID)
	assert.Equal(t, domainauth.DecisionDeniedUnauthenticated,
		f.guard.Authorize(context.Background(), hydrated, allow(domainauth.RoleAdmin)))
}

func TestGuard_BackgroundRoleMismatchEndsSession(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAdmin)

	demoted := f.gateway.DefaultIdentity
	demoted.Role = domainauth.RoleAmbassador
	f.gateway.VerifyFunc = func(context.Context, string) (domainauth.Identity, error) {
		return demoted, nil
	}

	decision := f.guard.Authorize(context.Background(), sess, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionAdmitted, decision)

	assert.Eventually(t, func() bool { return !f.store.Has(sess.ID) },
		time.Second, 5*time.Millisecond, "authoritative demotion must clear the credentials")
}

func TestGuard_SecondChanceAdmitsAndRefreshesStaleRole(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAmbassador)

	promoted := f.gateway.DefaultIdentity
	promoted.Role = domainauth.RoleAdmin
	f.gateway.VerifyFunc = func(context.Context, string) (domainauth.Identity, error) {
		return promoted, nil
	}

	decision := f.guard.Authorize(context.Background(), sess, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionAdmitted, decision)
	assert.Equal(t, domainauth.RoleAdmin, sess.Identity.Role, "session view reflects the fresh role")

	rec, err := f.store.Load(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, rec.Identity.Role, "stored identity reflects the fresh role")
}

func TestGuard_SecondChanceDeniesOnPersistingMismatch(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAmbassador)
	// Default verify confirms the cached (not allowed) role.

	decision := f.guard.Authorize(context.Background(), sess, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionDeniedForbidden, decision)
	assert.False(t, f.store.Has(sess.ID), "forbidden denial clears the credentials")
}

// The fallback branch treats a network failure as a denial: the local
// check already failed and nothing confirmed the stale role. This is the
// mirror image of TestGuard_BackgroundNetworkFailureKeepsAdmission.
func TestGuard_SecondChanceDeniesOnNetworkFailure(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAmbassador)
	f.gateway.Unreachable()

	decision := f.guard.Authorize(context.Background(), sess, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionDeniedForbidden, decision)
	assert.False(t, f.store.Has(sess.ID))
}

func TestGuard_SecondChanceDeniesOnUnauthorized(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAmbassador)
	f.gateway.RejectVerify(backend.ErrUnauthorized)

	decision := f.guard.Authorize(context.Background(), sess, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionDeniedForbidden, decision)
	assert.False(t, f.store.Has(sess.ID))
}

func TestGuard_SecondChanceAttemptIsSpent(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAmbassador)
	f.gateway.Unreachable()

	first := f.guard.Authorize(context.Background(), sess, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionDeniedForbidden, first)
	require.Equal(t, int64(1), f.gateway.VerifyCalls())

	// Same tuple again: no second verification, same denial.
	again := &domainauth.Session{ID: sess.ID, Identity: sess.Identity}
	second := f.guard.Authorize(context.Background(), again, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionDeniedForbidden, second)
	assert.Equal(t, int64(1), f.gateway.VerifyCalls())
}

func TestGuard_ReloginReArmsVerification(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAdmin)

	decision := f.guard.Authorize(context.Background(), sess, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionAdmitted, decision)
	assert.Eventually(t, func() bool { return f.gateway.VerifyCalls() == 1 },
		time.Second, 5*time.Millisecond)

	// A fresh login mints a new session ID, so its tuple is unspent.
	fresh := f.login(t, domainauth.RoleAdmin)
	require.NotEqual(t, sess.ID, fresh.ID)

	f.guard.Authorize(context.Background(), fresh, allow(domainauth.RoleAdmin))
	assert.Eventually(t, func() bool { return f.gateway.VerifyCalls() == 2 },
		time.Second, 5*time.Millisecond)
}

func TestGuard_VanishedCredentialsDenyOnSecondChance(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAmbassador)

	// Concurrent logout raced this request: the pair is already gone.
	require.NoError(t, f.store.Clear(context.Background(), sess.ID))

	decision := f.guard.Authorize(context.Background(), sess, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionDeniedForbidden, decision)
	assert.Zero(t, f.gateway.VerifyCalls(), "no token, nothing to verify")
}

func TestGuard_ConcurrentAuthorizesConverge(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAdmin)
	f.gateway.RejectVerify(backend.ErrUnauthorized)

	done := make(chan domainauth.Decision, 8)
	for range 8 {
		go func() {
			s := f.sessions.Hydrate(context.Background(), sess.ID)
			done <- f.guard.Authorize(context.Background(), s, allow(domainauth.RoleAdmin))
		}()
	}
	for range 8 {
		d := <-done
		assert.Contains(t,
			[]domainauth.Decision{domainauth.DecisionAdmitted, domainauth.DecisionDeniedUnauthenticated}, d)
	}

	assert.Eventually(t, func() bool { return !f.store.Has(sess.ID) },
		time.Second, 5*time.Millisecond, "all denial-driven writes converge on cleared credentials")
}

func TestGuard_StoreErrorOnRefreshStillAdmits(t *testing.T) {
	f := newGuardFixture()
	sess := f.login(t, domainauth.RoleAmbassador)

	promoted := f.gateway.DefaultIdentity
	promoted.Role = domainauth.RoleAdmin
	f.gateway.VerifyFunc = func(context.Context, string) (domainauth.Identity, error) {
		return promoted, nil
	}
	f.store.SaveErr = errors.New("redis down")

	decision := f.guard.Authorize(context.Background(), sess, allow(domainauth.RoleAdmin))
	assert.Equal(t, domainauth.DecisionAdmitted, decision,
		"the authority said yes; a store hiccup must not flip that to a denial")
}

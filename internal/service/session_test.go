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
	"github.com/brandreach/ambassador-ui-api/internal/ports"
)

func newSessionService(store *mocks.MemoryCredentialStore, gateway *mocks.MockAuthGateway) *SessionService {
	return NewSessionService(SessionServiceOptions{
		Store:               store,
		Gateway:             gateway,
		RemoteLogoutTimeout: time.Second,
	})
}

func TestSessionService_EstablishPersistsPair(t *testing.T) {
	store := mocks.NewMemoryCredentialStore()
	gateway := mocks.NewMockAuthGateway()
	svc := newSessionService(store, gateway)

	sess, err := svc.Establish(context.Background(), "mock.user@example.com", "pw")
	require.NoError(t, err)
	require.True(t, sess.Authenticated())
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, domainauth.RoleAdmin, sess.Identity.Role)

	rec, err := store.Load(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "mock-token-1", rec.Token)
	assert.Equal(t, *sess.Identity, rec.Identity)
}

func TestSessionService_EstablishPassesGatewayErrorsThrough(t *testing.T) {
	store := mocks.NewMemoryCredentialStore()
	gateway := mocks.NewMockAuthGateway()
	gateway.LoginFunc = func(context.Context, string, string) (domainauth.CredentialRecord, error) {
		return domainauth.CredentialRecord{}, backend.ErrInvalidCredentials
	}
	svc := newSessionService(store, gateway)

	_, err := svc.Establish(context.Background(), "x", "y")
	assert.ErrorIs(t, err, backend.ErrInvalidCredentials)

	gateway.LoginFunc = func(context.Context, string, string) (domainauth.CredentialRecord, error) {
		return domainauth.CredentialRecord{}, &backend.ValidationError{Message: "email must be an email"}
	}
	_, err = svc.Establish(context.Background(), "x", "y")
	ve, ok := backend.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "email must be an email", ve.Message)
}

func TestSessionService_EstablishSaveFailure(t *testing.T) {
	store := mocks.NewMemoryCredentialStore()
	store.SaveErr = errors.New("redis down")
	svc := newSessionService(store, mocks.NewMockAuthGateway())

	_, err := svc.Establish(context.Background(), "x", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save credentials")
}

func TestSessionService_HydrateStates(t *testing.T) {
	store := mocks.NewMemoryCredentialStore()
	gateway := mocks.NewMockAuthGateway()
	svc := newSessionService(store, gateway)
	ctx := context.Background()

	// No cookie at all.
	sess := svc.Hydrate(ctx, "")
	assert.False(t, sess.Authenticated())

	// Cookie without stored credentials.
	sess = svc.Hydrate(ctx, "sess-unknown")
	assert.False(t, sess.Authenticated())
	assert.Equal(t, "sess-unknown", sess.ID)

	// Stored pair hydrates an authenticated session.
	established, err := svc.Establish(ctx, "mock.user@example.com", "pw")
	require.NoError(t, err)

	sess = svc.Hydrate(ctx, established.ID)
	require.True(t, sess.Authenticated())
	assert.Equal(t, gateway.DefaultIdentity, *sess.Identity)
}

func TestSessionService_HydrateStoreFailureDegradesToAnonymous(t *testing.T) {
	store := mocks.NewMemoryCredentialStore()
	store.LoadErr = errors.New("redis down")
	svc := newSessionService(store, mocks.NewMockAuthGateway())

	sess := svc.Hydrate(context.Background(), "sess-1")
	assert.False(t, sess.Authenticated())
}

func TestSessionService_LogoutClearsLocallyAndNotifiesRemote(t *testing.T) {
	store := mocks.NewMemoryCredentialStore()
	gateway := mocks.NewMockAuthGateway()
	notified := make(chan string, 1)
	gateway.LogoutFunc = func(_ context.Context, token string) error {
		notified <- token
		return nil
	}
	svc := newSessionService(store, gateway)
	ctx := context.Background()

	sess, err := svc.Establish(ctx, "mock.user@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.ID))

	_, err = store.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, ports.ErrNoCredentials)

	select {
	case token := <-notified:
		assert.Equal(t, "mock-token-1", token)
	case <-time.After(time.Second):
		t.Fatal("remote logout was never attempted")
	}
}

func TestSessionService_LogoutSucceedsLocallyWhenRemoteFails(t *testing.T) {
	store := mocks.NewMemoryCredentialStore()
	gateway := mocks.NewMockAuthGateway()
	attempted := make(chan struct{}, 1)
	gateway.LogoutFunc = func(context.Context, string) error {
		attempted <- struct{}{}
		return backend.ErrNetwork
	}
	svc := newSessionService(store, gateway)
	ctx := context.Background()

	sess, err := svc.Establish(ctx, "mock.user@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.ID))

	_, err = store.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, ports.ErrNoCredentials)

	select {
	case <-attempted:
	case <-time.After(time.Second):
		t.Fatal("remote logout was never attempted")
	}
}

func TestSessionService_LogoutWithoutSessionIsNoop(t *testing.T) {
	store := mocks.NewMemoryCredentialStore()
	gateway := mocks.NewMockAuthGateway()
	svc := newSessionService(store, gateway)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, ""))
	require.NoError(t, svc.Logout(ctx, "never-logged-in"))

	// No token to revoke, so the authority is left alone.
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, gateway.LogoutCalls())
}

func TestSessionService_LogoutIsIdempotent(t *testing.T) {
	store := mocks.NewMemoryCredentialStore()
	svc := newSessionService(store, mocks.NewMockAuthGateway())
	ctx := context.Background()

	sess, err := svc.Establish(ctx, "mock.user@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.ID))
	require.NoError(t, svc.Logout(ctx, sess.ID))
}

func TestSessionService_Token(t *testing.T) {
	store := mocks.NewMemoryCredentialStore()
	svc := newSessionService(store, mocks.NewMockAuthGateway())
	ctx := context.Background()

	_, err := svc.Token(ctx, "sess-unknown")
	assert.ErrorIs(t, err, ports.ErrNoCredentials)

	sess, err := svc.Establish(ctx, "mock.user@example.com", "pw")
	require.NoError(t, err)

	token, err := svc.Token(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "mock-token-1", token)
}

func TestSessionService_Refresh(t *testing.T) {
	store := mocks.NewMemoryCredentialStore()
	svc := newSessionService(store, mocks.NewMockAuthGateway())
	ctx := context.Background()

	sess, err := svc.Establish(ctx, "mock.user@example.com", "pw")
	require.NoError(t, err)

	fresh := *sess.Identity
	fresh.Role = domainauth.RoleSuperadmin
	require.NoError(t, svc.Refresh(ctx, sess.ID, fresh))

	rec, err := store.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleSuperadmin, rec.Identity.Role)
	assert.Equal(t, "mock-token-1", rec.Token, "refresh keeps the token")

	assert.ErrorIs(t, svc.Refresh(ctx, "sess-unknown", fresh), ports.ErrNoCredentials)
}

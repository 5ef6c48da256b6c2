package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandreach/ambassador-ui-api/config"
	domainauth "github.com/brandreach/ambassador-ui-api/internal/domain/auth"
)

func testDeps(t *testing.T, mutate func(*config.AppConfig)) *ServiceDeps {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := config.AppConfig{}
	cfg.Backend.Mode = config.BackendModeStub
	cfg.Backend.Stub.Secret = "test-secret"
	cfg.Backend.Stub.Password = "devpass"
	cfg.Sanitize()
	if mutate != nil {
		mutate(&cfg)
	}

	return &ServiceDeps{
		Config: &cfg,
		Redis:  client,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewServicesStubMode(t *testing.T) {
	services, err := NewServices(testDeps(t, nil))
	require.NoError(t, err)

	ctx := context.Background()
	sess, err := services.Sessions.Establish(ctx, "superadmin@example.com", "devpass")
	require.NoError(t, err)
	require.True(t, sess.Authenticated())
	assert.Equal(t, domainauth.RoleSuperadmin, sess.Identity.Role)

	decision := services.Guard.Authorize(ctx, sess, domainauth.RoleSet{domainauth.RoleSuperadmin})
	assert.Equal(t, domainauth.DecisionAdmitted, decision)

	token, err := services.Sessions.Token(ctx, sess.ID)
	require.NoError(t, err)

	admins, err := services.Admins.List(ctx, token)
	require.NoError(t, err)
	assert.NotEmpty(t, admins)
}

func TestNewServicesRealModeRequiresIDP(t *testing.T) {
	_, err := NewServices(testDeps(t, func(cfg *config.AppConfig) {
		cfg.Backend.Mode = config.BackendModeReal
		cfg.Backend.BaseURL = "http://localhost:3000/api"
		cfg.IDP.BaseURL = ""
		cfg.IDP.APIKey = ""
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IDP_BASE_URL")
}

func TestNewServicesRealMode(t *testing.T) {
	services, err := NewServices(testDeps(t, func(cfg *config.AppConfig) {
		cfg.Backend.Mode = config.BackendModeReal
		cfg.Backend.BaseURL = "http://localhost:3000/api"
		cfg.IDP.BaseURL = "https://identitytoolkit.example.com/v1"
		cfg.IDP.APIKey = "key-123"
	}))
	require.NoError(t, err)
	assert.NotNil(t, services.Guard)
	assert.NotNil(t, services.Reset)
}

package main

import (
	"context"
	"encoding/json"
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

func testCommandContext(t *testing.T) (*commandContext, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := config.AppConfig{}
	cfg.Sanitize()

	return &commandContext{
		Ctx:    context.Background(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: cfg,
		Redis:  client,
	}, mr
}

func seedSession(t *testing.T, ctx *commandContext, sessionID, email string, role domainauth.Role) {
	t.Helper()

	rec := domainauth.CredentialRecord{
		Token: "token-" + sessionID,
		Identity: domainauth.Identity{
			SubjectID: "subject-" + sessionID,
			Email:     email,
			Role:      role,
		},
	}
	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	require.NoError(t, ctx.Redis.Set(ctx.Ctx, ctx.Config.Session.KeyPrefix+sessionID, raw, 0).Err())
}

func TestCollectSessions(t *testing.T) {
	ctx, _ := testCommandContext(t)
	seedSession(t, ctx, "s1", "root@example.com", domainauth.RoleSuperadmin)
	seedSession(t, ctx, "s2", "field@example.com", domainauth.RoleAmbassador)

	rows, err := collectSessions(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[string]sessionRow{}
	for _, row := range rows {
		byID[row.ID] = row
	}
	assert.Equal(t, "root@example.com", byID["s1"].Email)
	assert.Equal(t, "superadmin", byID["s1"].Role)
	assert.Equal(t, "ambassador", byID["s2"].Role)
}

func TestRevokeSession(t *testing.T) {
	ctx, mr := testCommandContext(t)
	seedSession(t, ctx, "s1", "root@example.com", domainauth.RoleSuperadmin)

	require.NoError(t, runSessionRevoke(ctx, []string{"s1"}))
	assert.False(t, mr.Exists(ctx.Config.Session.KeyPrefix+"s1"))

	err := runSessionRevoke(ctx, []string{"s1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRevokeAllSessions(t *testing.T) {
	ctx, mr := testCommandContext(t)
	seedSession(t, ctx, "s1", "root@example.com", domainauth.RoleSuperadmin)
	seedSession(t, ctx, "s2", "field@example.com", domainauth.RoleAmbassador)

	require.NoError(t, runSessionRevokeAll(ctx, nil))
	assert.False(t, mr.Exists(ctx.Config.Session.KeyPrefix+"s1"))
	assert.False(t, mr.Exists(ctx.Config.Session.KeyPrefix+"s2"))
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentity(t *testing.T) {
	id, ok := ParseIdentity([]byte(`{"uid":"u-1","email":"a@b.com","role":"admin","first_name":"Ada"}`))
	require.True(t, ok)
	assert.Equal(t, "u-1", id.SubjectID)
	assert.Equal(t, "a@b.com", id.Email)
	assert.Equal(t, RoleAdmin, id.Role)
	assert.Equal(t, "Ada", id.FirstName)
}

func TestParseIdentityRejectsUntrustedInput(t *testing.T) {
	cases := map[string]string{
		"malformed json":  `{"uid":`,
		"missing uid":     `{"email":"a@b.com","role":"admin"}`,
		"missing email":   `{"uid":"u-1","role":"admin"}`,
		"unknown role":    `{"uid":"u-1","email":"a@b.com","role":"owner"}`,
		"empty role":      `{"uid":"u-1","email":"a@b.com"}`,
		"not json object": `"admin"`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			id, ok := ParseIdentity([]byte(raw))
			assert.False(t, ok)
			assert.Equal(t, Identity{}, id)
		})
	}
}

func TestParseCredentialRecord(t *testing.T) {
	raw := `{"token":"tok-1","identity":{"uid":"u-1","email":"a@b.com","role":"ambassador"}}`
	rec, ok := ParseCredentialRecord([]byte(raw))
	require.True(t, ok)
	assert.Equal(t, "tok-1", rec.Token)
	assert.Equal(t, RoleAmbassador, rec.Identity.Role)
}

func TestParseCredentialRecordRejectsPartialPairs(t *testing.T) {
	cases := map[string]string{
		"missing token":    `{"identity":{"uid":"u-1","email":"a@b.com","role":"admin"}}`,
		"missing identity": `{"token":"tok-1"}`,
		"untrusted role":   `{"token":"tok-1","identity":{"uid":"u-1","email":"a@b.com","role":"guest"}}`,
		"malformed":        `not-json`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			rec, ok := ParseCredentialRecord([]byte(raw))
			assert.False(t, ok)
			assert.Equal(t, CredentialRecord{}, rec)
		})
	}
}

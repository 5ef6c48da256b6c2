package idp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSender(t *testing.T, handler http.Handler) *Sender {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sender, err := NewSender(Config{BaseURL: srv.URL, APIKey: "test-key"})
	require.NoError(t, err)
	return sender
}

func TestSender_SendPasswordReset(t *testing.T) {
	sender := newTestSender(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/accounts:sendOobCode", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "PASSWORD_RESET", body["requestType"])
		assert.Equal(t, "ada@example.com", body["email"])

		_ = json.NewEncoder(w).Encode(map[string]string{"email": "ada@example.com"})
	}))

	require.NoError(t, sender.SendPasswordReset(context.Background(), "ada@example.com"))
}

func TestSender_EmailNotFound(t *testing.T) {
	sender := newTestSender(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_NOT_FOUND"}}`))
	}))

	err := sender.SendPasswordReset(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrEmailNotFound)
}

func TestSender_OtherProviderErrors(t *testing.T) {
	sender := newTestSender(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_EMAIL"}}`))
	}))

	err := sender.SendPasswordReset(context.Background(), "not-an-email")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailNotFound)
}

func TestNewSender_ConfigValidation(t *testing.T) {
	_, err := NewSender(Config{APIKey: "k"})
	assert.Error(t, err)

	_, err = NewSender(Config{BaseURL: "http://idp.example.com"})
	assert.Error(t, err)
}

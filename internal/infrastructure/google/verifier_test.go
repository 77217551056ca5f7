package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftsupply/backend/internal/infrastructure/config"
)

func tokenInfoServer(t *testing.T, info map[string]string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "good-token", r.URL.Query().Get("id_token"))
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(info)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func validInfo() map[string]string {
	return map[string]string{
		"iss":            "https://accounts.google.com",
		"aud":            "client-123",
		"sub":            "1098",
		"email":          "ada@example.com",
		"email_verified": "true",
		"name":           "Ada Lovelace",
		"exp":            strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10),
	}
}

func TestVerifier_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		srv := tokenInfoServer(t, validInfo(), http.StatusOK)
		v := NewVerifier(config.GoogleConfig{ClientID: "client-123", TokenInfoURL: srv.URL})

		id, err := v.Verify(ctx, "good-token")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", id.Email)
		assert.Equal(t, "1098", id.Subject)
		assert.True(t, id.EmailVerified)
	})

	t.Run("audience mismatch", func(t *testing.T) {
		info := validInfo()
		info["aud"] = "someone-else"
		srv := tokenInfoServer(t, info, http.StatusOK)
		v := NewVerifier(config.GoogleConfig{ClientID: "client-123", TokenInfoURL: srv.URL})

		_, err := v.Verify(ctx, "good-token")
		assert.ErrorIs(t, err, ErrAudienceMismatch)
	})

	t.Run("unverified email", func(t *testing.T) {
		info := validInfo()
		info["email_verified"] = "false"
		srv := tokenInfoServer(t, info, http.StatusOK)
		v := NewVerifier(config.GoogleConfig{ClientID: "client-123", TokenInfoURL: srv.URL})

		_, err := v.Verify(ctx, "good-token")
		assert.ErrorIs(t, err, ErrEmailUnverified)
	})

	t.Run("expired", func(t *testing.T) {
		info := validInfo()
		info["exp"] = strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)
		srv := tokenInfoServer(t, info, http.StatusOK)
		v := NewVerifier(config.GoogleConfig{ClientID: "client-123", TokenInfoURL: srv.URL})

		_, err := v.Verify(ctx, "good-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejected by google", func(t *testing.T) {
		srv := tokenInfoServer(t, map[string]string{"error": "invalid_token"}, http.StatusBadRequest)
		v := NewVerifier(config.GoogleConfig{ClientID: "client-123", TokenInfoURL: srv.URL})

		_, err := v.Verify(ctx, "good-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("not configured", func(t *testing.T) {
		_, err := NewVerifier(config.GoogleConfig{}).Verify(ctx, "good-token")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

package token_adapter

import (
	"context"
	"testing"
	"time"

	"realty-backoffice/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	principal := domain.Principal{
		UserID:    uuid.New(),
		Email:     "karim@agence.ma",
		Role:      domain.RoleAgent,
		SessionID: "session-1",
	}

	t.Run("Should refuse an empty signing key", func(t *testing.T) {
		_, err := NewTokenService("")
		assert.Error(t, err)
	})

	t.Run("Should round-trip the principal and session", func(t *testing.T) {
		svc, err := NewTokenService("secret")
		require.NoError(t, err)

		token, expiresAt, err := svc.GenerateToken(ctx, principal, time.Hour)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 2*time.Second)

		got, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, principal, *got)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		svc, _ := NewTokenService("secret")
		token, _, err := svc.GenerateToken(ctx, principal, time.Minute)
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Now().Add(time.Hour) }
		_, err = svc.ValidateToken(ctx, token)

		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("Should reject a token signed with another key", func(t *testing.T) {
		other, _ := NewTokenService("other-secret")
		token, _, err := other.GenerateToken(ctx, principal, time.Hour)
		require.NoError(t, err)

		svc, _ := NewTokenService("secret")
		_, err = svc.ValidateToken(ctx, token)

		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("Should reject a token without a session", func(t *testing.T) {
		svc, _ := NewTokenService("secret")
		claims := jwt.MapClaims{"iss": issuer, "user_id": principal.UserID.String(), "exp": time.Now().Add(time.Hour).Unix()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)

		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("Should reject the none algorithm", func(t *testing.T) {
		svc, _ := NewTokenService("secret")
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"iss": issuer}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)

		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymhub/backend/internal/domain/identity"
	"github.com/gymhub/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	cfg := config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	}
	return NewJWTService(cfg)
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("recepcion1", "contraseña-larga", "Mesa de Entrada", identity.RoleReception)
	require.NoError(t, err)
	u.ID = 42
	return u
}

func TestGenerateToken(t *testing.T) {
	svc := newTestJWTService()
	user := newTestUser(t)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, time.Second)
}

func TestValidateToken(t *testing.T) {
	svc := newTestJWTService()
	user := newTestUser(t)

	t.Run("accepts a freshly issued token", func(t *testing.T) {
		token, err := svc.GenerateToken(user)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, "recepcion1", claims.Username)
		assert.Equal(t, "Mesa de Entrada", claims.DisplayName)
		assert.Equal(t, "RECEPCION", claims.Role)
		assert.Equal(t, "test-issuer", claims.Issuer)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-key-at-least-32ch",
			AccessTokenExpiration: 15 * time.Minute,
			Issuer:                "test-issuer",
		})
		token, err := other.GenerateToken(user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-at-least-32-chars",
			AccessTokenExpiration: -time.Minute,
			Issuer:                "test-issuer",
		})
		token, err := expired.GenerateToken(user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

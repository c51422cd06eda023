package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/liuwen/bookmall/pkg/errors"
)

func newTestManager() *Manager {
	return NewManager("test-secret", 2*time.Hour, 168*time.Hour)
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(42, "alice@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(7200), pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "bookmall", claims.Issuer)
}

func TestParseTokenErrors(t *testing.T) {
	m := newTestManager()

	t.Run("篡改的Token", func(t *testing.T) {
		pair, err := m.GenerateToken(1, "a@example.com", "user")
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken + "x")
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidToken))
	})

	t.Run("错误的密钥", func(t *testing.T) {
		other := NewManager("another-secret", 2*time.Hour, 168*time.Hour)
		pair, err := other.GenerateToken(1, "a@example.com", "user")
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidToken))
	})

	t.Run("过期的Token", func(t *testing.T) {
		expired := NewManager("test-secret", -time.Minute, 168*time.Hour)
		pair, err := expired.GenerateToken(1, "a@example.com", "user")
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeTokenExpired))
	})

	t.Run("乱码", func(t *testing.T) {
		_, err := m.ParseToken("not-a-jwt")
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidToken))
	})
}

func TestRefreshAccessToken(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(7, "bob@example.com", "user")
	require.NoError(t, err)

	newAccess, err := m.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := m.ParseToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)

	_, err = m.RefreshAccessToken("garbage")
	assert.Error(t, err)
}

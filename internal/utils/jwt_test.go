package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	raw, err := NewAccessToken(testSecret, 42, "user@example.com", "acheteur", 1800)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := ParseAccessToken(testSecret, raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "acheteur", claims.Type)
	assert.False(t, claims.Exp.IsZero())
}

func TestParseAccessTokenExpired(t *testing.T) {
	raw, err := NewAccessToken(testSecret, 1, "old@example.com", "admin", -60)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	raw, err := NewAccessToken(testSecret, 1, "a@b.co", "admin", 1800)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	_, err := ParseAccessToken(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, VerifyPassword(hash, "s3cret!"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

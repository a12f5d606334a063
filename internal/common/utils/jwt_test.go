package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "wanderer", "access", time.Hour, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "wanderer", claims.Username)
	assert.Equal(t, "access", claims.Type)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "wanderer", "access", time.Hour, testSecret)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(42, "wanderer", "access", -time.Minute, testSecret)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

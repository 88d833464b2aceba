package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuer() TokenIssuer {
	return TokenIssuer{Key: []byte("test-key"), Issuer: "realty_portal", Expiration: time.Hour}
}

func TestGenerateAndValidateJWT(t *testing.T) {
	token, claims, err := issuer().GenerateJWT("u1", "admin@sudharealty.in")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.Id)

	got, err := issuer().ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "admin@sudharealty.in", got.Email)
	assert.Equal(t, claims.Id, got.Id)
}

func TestValidateJWTRejectsWrongKey(t *testing.T) {
	token, _, err := issuer().GenerateJWT("u1", "admin@sudharealty.in")
	require.NoError(t, err)

	other := issuer()
	other.Key = []byte("another-key")
	_, err = other.ValidateJWT(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	expired := issuer()
	expired.Expiration = -time.Minute
	token, _, err := expired.GenerateJWT("u1", "admin@sudharealty.in")
	require.NoError(t, err)

	_, err = issuer().ValidateJWT(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := issuer().ValidateJWT("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

package utils

import (
	"testing"
	"time"

	"game_api/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = domain.User{ID: 7, Username: "alice", Email: "alice@example.com", Role: domain.RolePlayer}

func TestGenerateAndParseJWT(t *testing.T) {
	opts := TokenOptions{Secret: "s3cret", TTL: time.Hour, Issuer: "GameAPI", Audience: "GameClient"}

	token, exp, err := GenerateJWT(testUser, opts)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ParseJWT(token, opts)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, domain.RolePlayer, claims.Role)
	assert.Equal(t, "GameAPI", claims.Issuer)
}

func TestParseJWTRejects(t *testing.T) {
	opts := TokenOptions{Secret: "s3cret", TTL: time.Hour}
	token, _, err := GenerateJWT(testUser, opts)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ParseJWT(token, TokenOptions{Secret: "other"})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired, _, err := GenerateJWT(testUser, TokenOptions{Secret: "s3cret", TTL: -time.Minute})
		require.NoError(t, err)
		_, err = ParseJWT(expired, opts)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		_, err := ParseJWT(token, TokenOptions{Secret: "s3cret", Issuer: "GameAPI"})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("audience mismatch", func(t *testing.T) {
		_, err := ParseJWT(token, TokenOptions{Secret: "s3cret", Audience: "GameClient"})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		claims := Claims{
			UserID: 7,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
		require.NoError(t, err)
		_, err = ParseJWT(signed, opts)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseJWT("not-a-token", opts)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

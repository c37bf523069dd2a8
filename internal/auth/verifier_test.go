package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laabobo/live-relay/internal/config"
)

func sign(t *testing.T, secret, issuer, userID string, expiresIn time.Duration) string {
	t.Helper()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
		UserID: userID,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifier_Disabled(t *testing.T) {
	v := NewVerifier(config.AuthConfig{Enabled: false})

	id, err := v.Identify("whatever", "asserted-id")
	require.NoError(t, err)
	assert.Equal(t, "asserted-id", id)
}

func TestVerifier_ValidToken(t *testing.T) {
	v := NewVerifier(config.AuthConfig{Enabled: true, Secret: "s3cret", Issuer: "laabobo-live"})
	token := sign(t, "s3cret", "laabobo-live", "user-42", time.Hour)

	id, err := v.Identify(token, "asserted-id")
	require.NoError(t, err)
	assert.Equal(t, "user-42", id)
}

func TestVerifier_NoTokenFallsBack(t *testing.T) {
	v := NewVerifier(config.AuthConfig{Enabled: true, Secret: "s3cret"})

	id, err := v.Identify("", "asserted-id")
	require.NoError(t, err)
	assert.Equal(t, "asserted-id", id)
}

func TestVerifier_BadSignature(t *testing.T) {
	v := NewVerifier(config.AuthConfig{Enabled: true, Secret: "s3cret", Issuer: "laabobo-live"})
	token := sign(t, "other-secret", "laabobo-live", "user-42", time.Hour)

	_, err := v.Identify(token, "asserted-id")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifier_ExpiredToken(t *testing.T) {
	v := NewVerifier(config.AuthConfig{Enabled: true, Secret: "s3cret", Issuer: "laabobo-live"})
	token := sign(t, "s3cret", "laabobo-live", "user-42", -time.Minute)

	_, err := v.Identify(token, "asserted-id")
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifier_WrongIssuer(t *testing.T) {
	v := NewVerifier(config.AuthConfig{Enabled: true, Secret: "s3cret", Issuer: "laabobo-live"})
	token := sign(t, "s3cret", "someone-else", "user-42", time.Hour)

	_, err := v.Identify(token, "asserted-id")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

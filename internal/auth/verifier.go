package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/laabobo/live-relay/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims are the identity claims the relay cares about.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Verifier checks client-supplied tokens. When disabled, the relay falls
// back to trusting client-asserted identifiers, which matches the legacy
// behavior of the first demo clients.
type Verifier struct {
	enabled bool
	secret  []byte
	issuer  string
}

func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{
		enabled: cfg.Enabled,
		secret:  []byte(cfg.Secret),
		issuer:  cfg.Issuer,
	}
}

// Enabled reports whether token verification is active.
func (v *Verifier) Enabled() bool {
	return v.enabled
}

// Identify resolves the user ID for a message. With verification
// enabled, a valid token wins over the asserted ID and an invalid one is
// rejected outright; with it disabled the asserted ID is taken as-is.
func (v *Verifier) Identify(token, assertedID string) (string, error) {
	if !v.enabled || token == "" {
		return assertedID, nil
	}

	claims, err := v.Verify(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// Verify parses and validates a token, returning its claims.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

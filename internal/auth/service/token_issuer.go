package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/migfernandes01/places-share-API/internal/common/clock"
	"github.com/migfernandes01/places-share-API/internal/common/jwtverify"
	"github.com/migfernandes01/places-share-API/internal/observability/metrics"
)

// TokenIssuer signs session tokens carrying {userId, email} with an expiry.
// The secret is process-wide configuration and never leaves this package.
type TokenIssuer struct {
	jwtSecret []byte
	clock     clock.Clock
	tokenTTL  time.Duration
}

func NewTokenIssuer(jwtSecret string, tokenTTL time.Duration, clock clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret: []byte(jwtSecret),
		clock:     clock,
		tokenTTL:  tokenTTL,
	}
}

func (ti *TokenIssuer) Issue(userID, email string) (string, error) {
	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   now.Add(ti.tokenTTL).Unix(),
		"iat":   now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.jwtSecret)
	if err != nil {
		return "", err
	}

	metrics.SessionTokensIssued.Inc()
	return tokenString, nil
}

func (ti *TokenIssuer) Parse(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.jwtSecret)
}

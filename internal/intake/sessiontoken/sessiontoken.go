// Package sessiontoken binds the browser cookie to a server-side session ID
// with an HMAC-signed token, so a client cannot mint or swap session
// identities.
package sessiontoken

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Malar-R/friendly-octo-memory/internal/sentinel"
)

// Service signs and verifies session cookie tokens.
type Service struct {
	signingKey []byte
	ttl        time.Duration
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(secret),
		ttl:        ttl,
	}
}

// Issue returns a signed token whose subject is the session ID.
func (s *Service) Issue(sessionID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies a cookie token and returns the session ID it names.
// Tampered, expired, or malformed tokens all resolve to ErrInvalidState so
// callers treat them uniformly as "no session".
func (s *Service) Parse(raw string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse session token: %w", sentinel.ErrInvalidState)
	}

	sessionID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("session token subject: %w", sentinel.ErrInvalidState)
	}
	return sessionID, nil
}

package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/astro-booking/internal/domain"
)

// ErrVerifierDisabled is returned when no JWT secret is configured.
var ErrVerifierDisabled = errors.New("session verification not configured")

// SessionVerifier validates access tokens issued by the hosted auth backend.
type SessionVerifier struct {
	secret []byte
	leeway time.Duration
}

// NewSessionVerifier builds a verifier for HS256 tokens signed with secret.
func NewSessionVerifier(secret string) *SessionVerifier {
	return &SessionVerifier{secret: []byte(secret), leeway: 30 * time.Second}
}

// SessionClaims describes the backend JWT payload.
type SessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Verify parses tokenStr and returns the session it represents.
func (v *SessionVerifier) Verify(tokenStr string) (*domain.Session, error) {
	if v == nil || len(v.secret) == 0 {
		return nil, ErrVerifierDisabled
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	}, jwt.WithLeeway(v.leeway), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	// anon/service tokens carry no user.
	if claims.Role != "" && claims.Role != "authenticated" {
		return nil, errors.New("token is not a user session")
	}

	session := &domain.Session{Subject: claims.Subject, Email: claims.Email}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

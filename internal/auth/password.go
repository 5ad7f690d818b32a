package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// StaticToken guards admin creation with a shared secret. The configured
// value may be the plain token or its bcrypt hash.
type StaticToken struct {
	configured string
}

// NewStaticToken wraps the configured admin creation token.
func NewStaticToken(configured string) StaticToken {
	return StaticToken{configured: strings.TrimSpace(configured)}
}

// Configured reports whether a token has been set.
func (t StaticToken) Configured() bool {
	return t.configured != ""
}

// Matches reports whether presented equals the configured token.
func (t StaticToken) Matches(presented string) bool {
	if !t.Configured() || presented == "" {
		return false
	}
	if isBcryptHash(t.configured) {
		return bcrypt.CompareHashAndPassword([]byte(t.configured), []byte(presented)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(t.configured), []byte(presented)) == 1
}

// HashToken produces a bcrypt hash suitable for ADMIN_CREATION_TOKEN.
func HashToken(token string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(token), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func isBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

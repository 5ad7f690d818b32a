package domain

import "time"

// AuthIdentity is the credential record owned by the hosted auth backend.
type AuthIdentity struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Session is a verified backend access token.
type Session struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

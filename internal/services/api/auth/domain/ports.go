package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	// Login verifies the assertion, upserts the identity, and issues a session
	Login(ctx context.Context, in LoginInput) (AuthResponse, error)
	// Logout revokes the session for token if one exists, reporting existence
	Logout(ctx context.Context, token string) (bool, error)
	// Resolve returns the identity and session for a valid token
	// absence, revocation, and expiry are all reported as found=false
	Resolve(ctx context.Context, token string) (Identity, Session, bool, error)
}

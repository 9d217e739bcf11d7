package ports

import "github.com/google/uuid"

// SessionTokens mints and verifies opaque session tokens for cookies.
// The concrete implementation lives in the use case layer; middleware and
// handlers depend only on this interface.
type SessionTokens interface {
	// Issue creates a token bound to the given user.
	Issue(userID uuid.UUID) (string, error)

	// Verify returns the user ID a token was issued for, or an error when
	// the token is missing claims, tampered with, or expired.
	Verify(token string) (uuid.UUID, error)
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
// PasswordHash is a bcrypt hash; the plaintext password never leaves the
// auth use case.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Joke represents a single joke owned by a user.
type Joke struct {
	ID        uuid.UUID
	Name      string
	Content   string
	OwnerID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

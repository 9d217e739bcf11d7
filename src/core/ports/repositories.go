// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"github.com/google/uuid"

	"jokeboard/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// IdentityStore persists user accounts.
//
// CreateUser must rely on a storage-level uniqueness constraint for usernames
// and return domain.ErrAlreadyExists when it is violated; any pre-check by
// callers is best effort only.
type IdentityStore interface {
	Repository

	CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// Store is the composite persistence surface the server is wired with.
type Store interface {
	IdentityStore
	JokeStore
}

// JokeStore persists jokes.
type JokeStore interface {
	Repository

	CreateJoke(ctx context.Context, name, content string, ownerID uuid.UUID) (*domain.Joke, error)
	GetJoke(ctx context.Context, jokeID uuid.UUID) (*domain.Joke, error)
	// ListJokes returns a page of jokes, newest first, plus the total count.
	ListJokes(ctx context.Context, page, perPage int) ([]domain.Joke, int64, error)
	RandomJoke(ctx context.Context) (*domain.Joke, error)
	DeleteJoke(ctx context.Context, jokeID uuid.UUID) error
}

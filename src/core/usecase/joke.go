package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"jokeboard/src/core/domain"
	"jokeboard/src/core/ports"
)

// JokeService handles joke creation and browsing.
type JokeService struct {
	jokes ports.JokeStore
	log   *slog.Logger
}

func NewJokeService(jokes ports.JokeStore, log *slog.Logger) *JokeService {
	return &JokeService{jokes: jokes, log: log}
}

// Create persists a joke for its owner. Field validation happens in the
// handler before this is called; there is exactly one store write per
// successful submission.
func (s *JokeService) Create(ctx context.Context, ownerID uuid.UUID, name, content string) (*domain.Joke, error) {
	joke, err := s.jokes.CreateJoke(ctx, name, content, ownerID)
	if err != nil {
		return nil, err
	}
	s.log.Info("joke created", "joke_id", joke.ID, "owner_id", ownerID)
	return joke, nil
}

// Get returns a joke by ID.
func (s *JokeService) Get(ctx context.Context, jokeID uuid.UUID) (*domain.Joke, error) {
	return s.jokes.GetJoke(ctx, jokeID)
}

// List returns a page of jokes, newest first, plus the total count.
func (s *JokeService) List(ctx context.Context, page, perPage int) ([]domain.Joke, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.jokes.ListJokes(ctx, page, perPage)
}

// Random returns a random joke, or not-found when there are none.
func (s *JokeService) Random(ctx context.Context) (*domain.Joke, error) {
	return s.jokes.RandomJoke(ctx)
}

// Delete removes a joke. Only the owner may delete it.
func (s *JokeService) Delete(ctx context.Context, userID, jokeID uuid.UUID) error {
	joke, err := s.jokes.GetJoke(ctx, jokeID)
	if err != nil {
		return err
	}
	if joke.OwnerID != userID {
		return domain.NewForbiddenError("only the owner can delete a joke")
	}
	return s.jokes.DeleteJoke(ctx, jokeID)
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jokeboard/src/core/domain"
	"jokeboard/src/core/ports"
)

// AuthService handles login and registration against the identity store.
type AuthService struct {
	users ports.IdentityStore
	log   *slog.Logger
}

func NewAuthService(users ports.IdentityStore, log *slog.Logger) *AuthService {
	return &AuthService{users: users, log: log}
}

// Login verifies a username/password pair. An unknown username and a wrong
// password both return domain.ErrInvalidCredentials so the response does not
// reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// CurrentUser resolves a session's user ID to the account it belongs to.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// Register creates a new account. The username lookup is a best-effort
// pre-check; the store's uniqueness constraint is authoritative, and its
// violation surfaces as the same already-exists error.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	existing, err := s.users.GetUserByUsername(ctx, username)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewAlreadyExistsError(fmt.Sprintf("user with username %s already exists", username))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, username, string(hash))
	if err != nil {
		if domain.IsAlreadyExists(err) {
			return nil, domain.NewAlreadyExistsError(fmt.Sprintf("user with username %s already exists", username))
		}
		return nil, err
	}

	s.log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"jokeboard/src/core/ports"
)

// SessionService issues and verifies the HS256 tokens carried by the session
// cookie. The token is stateless: it carries only the user ID as subject.
type SessionService struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionService(secret []byte, ttl time.Duration) *SessionService {
	return &SessionService{secret: secret, ttl: ttl}
}

var _ ports.SessionTokens = (*SessionService)(nil)

// Issue mints a token bound to the given user.
func (s *SessionService) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token and returns the user ID it was issued
// for. Expired or tampered tokens return an error.
func (s *SessionService) Verify(tokenStr string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, errors.New("invalid session token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session subject: %w", err)
	}
	return userID, nil
}

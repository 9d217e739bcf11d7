package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionServiceIssueVerify(t *testing.T) {
	svc := NewSessionService([]byte("test-secret"), time.Hour)
	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestSessionServiceRejectsTamperedToken(t *testing.T) {
	svc := NewSessionService([]byte("test-secret"), time.Hour)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(token + "x")
	assert.Error(t, err)

	_, err = svc.Verify("not-a-token")
	assert.Error(t, err)

	_, err = svc.Verify("")
	assert.Error(t, err)
}

func TestSessionServiceRejectsWrongSecret(t *testing.T) {
	issuer := NewSessionService([]byte("secret-a"), time.Hour)
	verifier := NewSessionService([]byte("secret-b"), time.Hour)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestSessionServiceRejectsExpiredToken(t *testing.T) {
	svc := NewSessionService([]byte("test-secret"), -time.Minute)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

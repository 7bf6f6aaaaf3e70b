package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/taskhive/internal/domain"
	"github.com/aidar/taskhive/internal/repository/memory"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, " Alice ", "Alice@Example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)

	token, logged, err := f.auth.Login(ctx, "ALICE@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, logged.UserID)

	claims, err := f.auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.UserID)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, "other", "ALICE@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_LoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice")

	_, _, err := f.auth.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = f.auth.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), "secret", time.Hour, 4)
	other := NewAuthService(store.Users(), "another-secret", time.Hour, 4)
	expired := NewAuthService(store.Users(), "secret", -time.Minute, 4)

	user := &domain.User{UserID: "u1", Email: "u1@example.com"}

	token, err := other.IssueToken(user)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	token, err = expired.IssueToken(user)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

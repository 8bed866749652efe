package service

import (
	"context"
	"testing"

	"delit-api/internal/apperror"
	"delit-api/internal/config"
	"delit-api/internal/models"
	"delit-api/internal/token"

	"github.com/stretchr/testify/require"
)

func TestCreateUserThenAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	created, err := f.users.CreateUser(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.True(t, models.IsValidObjectID(created.ID))
	require.NotEqual(t, "s3cret", created.PasswordHash)

	user, err := f.users.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)

	_, err = f.users.Authenticate(ctx, "alice", "wrong")
	require.True(t, apperror.Is(err, apperror.KindUnauthorized), "got %v", err)

	_, err = f.users.Authenticate(ctx, "bob", "s3cret")
	require.True(t, apperror.Is(err, apperror.KindNotFound), "got %v", err)
}

func TestCreateUserDuplicate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.createUser(t, "alice", "first")

	_, err := f.users.CreateUser(ctx, "alice", "second")
	require.True(t, apperror.Is(err, apperror.KindConflict), "got %v", err)

	_, err = f.users.Authenticate(ctx, "alice", "second")
	require.True(t, apperror.Is(err, apperror.KindUnauthorized), "got %v", err)
}

func TestCreateUserValidation(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.users.CreateUser(context.Background(), "  ", "pw")
	require.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.users.CreateUser(context.Background(), "alice", "")
	require.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestDeleteUserRevokesSessions(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.createUser(t, "alice", "pw")

	pair, err := f.auth.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	require.NoError(t, f.users.DeleteUser(ctx, "alice"))

	revoked, err := f.tokens.IsRevoked(ctx, token.HashToken(pair.RefreshToken))
	require.NoError(t, err)
	require.True(t, revoked)

	err = f.users.DeleteUser(ctx, "alice")
	require.True(t, apperror.Is(err, apperror.KindNotFound))
	require.Contains(t, f.audit.Actions(), "user_deleted")
}

func TestEnsureAdmin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.EnsureAdmin(ctx, config.AdminConfig{}))
	users, err := f.users.ListUsers(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	admin := config.AdminConfig{Username: "admin", Password: "changeme"}
	require.NoError(t, f.users.EnsureAdmin(ctx, admin))
	require.NoError(t, f.users.EnsureAdmin(ctx, admin))

	users, err = f.users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	_, err = f.users.Authenticate(ctx, "admin", "changeme")
	require.NoError(t, err)
}

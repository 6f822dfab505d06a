package tokenstore

import (
	"context"
	"testing"
	"time"
	"userauth/internal/core/domain/user"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/require"
)

const (
	USER_ID          = 42
	AUTH_TOKEN       = "test-auth-token"
	OTHER_AUTH_TOKEN = "other-auth-token"
)

var NOW time.Time = time.Date(2022, 6, 15, 12, 34, 55, 0, time.UTC)

func setupStore(t *testing.T) (*Redis, *user.FakeUserRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	userRepo := user.NewFakeUserRepository()
	userRepo.Users = []user.User{{ID: USER_ID, Username: "mike"}}
	return NewRedis(client, userRepo), userRepo
}

func TestGetOrCreateNewToken(t *testing.T) {
	// Setup ---
	store, _ := setupStore(t)

	// Exercise ---
	token, err := store.GetOrCreate(
		context.Background(),
		user.CreateTokenInput{UserID: USER_ID, Token: user.AuthToken(AUTH_TOKEN), CreatedAt: NOW},
	)

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, user.AuthToken(AUTH_TOKEN), token)

	u, err := store.GetUserByToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID(USER_ID), u.ID)
}

func TestGetOrCreateReturnsExistingToken(t *testing.T) {
	// Setup ---
	store, _ := setupStore(t)
	first, err := store.GetOrCreate(
		context.Background(),
		user.CreateTokenInput{UserID: USER_ID, Token: user.AuthToken(AUTH_TOKEN), CreatedAt: NOW},
	)
	require.NoError(t, err)

	// Exercise ---
	second, err := store.GetOrCreate(
		context.Background(),
		user.CreateTokenInput{UserID: USER_ID, Token: user.AuthToken(OTHER_AUTH_TOKEN), CreatedAt: NOW},
	)

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, first, second)

	_, err = store.GetUserByToken(context.Background(), user.AuthToken(OTHER_AUTH_TOKEN))
	require.ErrorIs(t, err, user.ErrUserDoesNotExist)
}

func TestGetUserByUnknownToken(t *testing.T) {
	// Setup ---
	store, _ := setupStore(t)

	// Exercise ---
	_, err := store.GetUserByToken(context.Background(), user.AuthToken("unknown"))

	// Verify ---
	require.ErrorIs(t, err, user.ErrUserDoesNotExist)
}

func TestDelete(t *testing.T) {
	// Setup ---
	store, _ := setupStore(t)
	token, err := store.GetOrCreate(
		context.Background(),
		user.CreateTokenInput{UserID: USER_ID, Token: user.AuthToken(AUTH_TOKEN), CreatedAt: NOW},
	)
	require.NoError(t, err)

	// Exercise ---
	userID, err := store.Delete(context.Background(), token)

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, user.ID(USER_ID), userID)

	_, err = store.GetUserByToken(context.Background(), token)
	require.ErrorIs(t, err, user.ErrUserDoesNotExist)

	// Deleting again reports the token as gone.
	_, err = store.Delete(context.Background(), token)
	require.ErrorIs(t, err, user.ErrTokenDoesNotExist)
}

func TestNewTokenCanBeIssuedAfterDelete(t *testing.T) {
	// Setup ---
	store, _ := setupStore(t)
	token, err := store.GetOrCreate(
		context.Background(),
		user.CreateTokenInput{UserID: USER_ID, Token: user.AuthToken(AUTH_TOKEN), CreatedAt: NOW},
	)
	require.NoError(t, err)
	_, err = store.Delete(context.Background(), token)
	require.NoError(t, err)

	// Exercise ---
	newToken, err := store.GetOrCreate(
		context.Background(),
		user.CreateTokenInput{UserID: USER_ID, Token: user.AuthToken(OTHER_AUTH_TOKEN), CreatedAt: NOW},
	)

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, user.AuthToken(OTHER_AUTH_TOKEN), newToken)
}

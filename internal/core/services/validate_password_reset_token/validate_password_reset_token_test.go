package validatepasswordresettoken

import (
	"context"
	"testing"
	"userauth/internal/core/domain/logging"
	"userauth/internal/core/domain/user"

	"github.com/stretchr/testify/require"
)

const (
	USER_ID     = 42
	RESET_TOKEN = "test-reset-token"
)

func setupRepo() *user.FakeUserRepository {
	userRepo := user.NewFakeUserRepository()
	userRepo.Users = []user.User{{ID: USER_ID, Username: "mike"}}
	return userRepo
}

func TestValidToken(t *testing.T) {
	// Setup ---
	service := New(
		logging.NewFakeLogger(),
		setupRepo(),
		user.NewFakePasswordResetter(RESET_TOKEN, true),
	)

	// Exercise ---
	result, err := service.Run(
		context.Background(),
		Input{
			EncodedUserID: user.EncodeUserID(USER_ID),
			Token:         user.PasswordResetToken(RESET_TOKEN),
		},
	)

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, user.ID(USER_ID), result.User.ID)
}

func TestInvalidToken(t *testing.T) {
	// Setup ---
	service := New(
		logging.NewFakeLogger(),
		setupRepo(),
		user.NewFakePasswordResetter(RESET_TOKEN, false),
	)

	// Exercise ---
	_, err := service.Run(
		context.Background(),
		Input{
			EncodedUserID: user.EncodeUserID(USER_ID),
			Token:         user.PasswordResetToken(RESET_TOKEN),
		},
	)

	// Verify ---
	require.ErrorIs(t, err, user.ErrInvalidPasswordResetToken)
}

func TestMalformedUserID(t *testing.T) {
	// Setup ---
	service := New(
		logging.NewFakeLogger(),
		setupRepo(),
		user.NewFakePasswordResetter(RESET_TOKEN, true),
	)

	// Exercise ---
	_, err := service.Run(
		context.Background(),
		Input{EncodedUserID: "%%%", Token: user.PasswordResetToken(RESET_TOKEN)},
	)

	// Verify ---
	require.ErrorIs(t, err, user.ErrUserDoesNotExist)
}

package sendpasswordresetemail

import (
	"context"
	"testing"
	c "userauth/internal/core/domain/common"
	"userauth/internal/core/domain/logging"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services"

	"github.com/stretchr/testify/require"
)

const (
	USER_ID     = 7
	EMAIL       = "mike@test.test"
	RESET_TOKEN = "test-reset-token"
)

type testSuite struct {
	log      *logging.FakeLogger
	userRepo *user.FakeUserRepository
	resetter *user.FakePasswordResetter
	sender   *user.FakePasswordResetTokenSender
}

func setupSuite() *testSuite {
	userRepo := user.NewFakeUserRepository()
	userRepo.Users = []user.User{{ID: USER_ID, Email: c.NewEmail(EMAIL)}}
	return &testSuite{
		log:      logging.NewFakeLogger(),
		userRepo: userRepo,
		resetter: user.NewFakePasswordResetter(RESET_TOKEN, true),
		sender:   user.NewFakePasswordResetTokenSender(),
	}
}

func (s *testSuite) createService() services.Service[Input, Result] {
	return New(s.log, s.userRepo, s.resetter, s.sender)
}

func TestEmailSuccessfullySent(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, user.PasswordResetToken(RESET_TOKEN), result.Token)
	require.Equal(t, 1, suite.sender.SentCount())
	require.Equal(t, user.ID(USER_ID), suite.sender.SentTo[0].ID)
	require.Equal(t, DefaultSubject, suite.sender.Subjects[0])
}

func TestCustomSubject(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	_, err := service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Subject: "Custom subject"},
	)

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, "Custom subject", suite.sender.Subjects[0])
}

func TestUnknownEmail(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	_, err := service.Run(context.Background(), Input{Email: c.NewEmail("unknown@test.test")})

	// Verify ---
	require.ErrorIs(t, err, user.ErrUserDoesNotExist)
	require.Equal(t, 0, suite.sender.SentCount())
}

func TestEmailDeliveryNotConfigured(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.sender.ReturnError = user.ErrEmailDeliveryNotConfigured
	service := suite.createService()

	// Exercise ---
	_, err := service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	// Verify ---
	require.ErrorIs(t, err, user.ErrEmailDeliveryNotConfigured)
}

func TestEmailDeliveryFails(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.sender.ReturnError = context.DeadlineExceeded
	service := suite.createService()

	// Exercise ---
	_, err := service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	// Verify ---
	require.ErrorIs(t, err, user.ErrEmailDeliveryFailed)
}

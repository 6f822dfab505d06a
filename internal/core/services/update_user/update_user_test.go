package updateuser

import (
	"context"
	"testing"
	c "userauth/internal/core/domain/common"
	"userauth/internal/core/domain/logging"
	"userauth/internal/core/domain/user"

	"github.com/stretchr/testify/require"
)

const USER_ID = 42

func setupRepo() *user.FakeUserRepository {
	userRepo := user.NewFakeUserRepository()
	userRepo.Users = []user.User{
		{
			ID:        USER_ID,
			Username:  "mike",
			Email:     c.NewEmail("mike@test.test"),
			FirstName: "Mike",
			LastName:  "Smith",
		},
	}
	return userRepo
}

func TestPartialUpdate(t *testing.T) {
	cases := []struct {
		id                string
		input             Input
		expectedEmail     c.Email
		expectedFirstName string
		expectedLastName  string
	}{
		{
			id:                "first name only",
			input:             Input{UserID: USER_ID, DoFirstNameUpdate: true, FirstName: "Michael"},
			expectedEmail:     c.NewEmail("mike@test.test"),
			expectedFirstName: "Michael",
			expectedLastName:  "Smith",
		},
		{
			id:                "last name only",
			input:             Input{UserID: USER_ID, DoLastNameUpdate: true, LastName: "Jones"},
			expectedEmail:     c.NewEmail("mike@test.test"),
			expectedFirstName: "Mike",
			expectedLastName:  "Jones",
		},
		{
			id:                "email only",
			input:             Input{UserID: USER_ID, DoEmailUpdate: true, Email: c.NewEmail("new@test.test")},
			expectedEmail:     c.NewEmail("new@test.test"),
			expectedFirstName: "Mike",
			expectedLastName:  "Smith",
		},
		{
			id:                "nothing flagged",
			input:             Input{UserID: USER_ID, FirstName: "Ignored"},
			expectedEmail:     c.NewEmail("mike@test.test"),
			expectedFirstName: "Mike",
			expectedLastName:  "Smith",
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			userRepo := setupRepo()
			service := New(logging.NewFakeLogger(), userRepo)

			// Exercise ---
			result, err := service.Run(context.Background(), testcase.input)

			// Verify ---
			require.NoError(t, err)
			require.Equal(t, testcase.expectedEmail, result.User.Email)
			require.Equal(t, testcase.expectedFirstName, result.User.FirstName)
			require.Equal(t, testcase.expectedLastName, result.User.LastName)
		})
	}
}

func TestUnknownUser(t *testing.T) {
	// Setup ---
	service := New(logging.NewFakeLogger(), setupRepo())

	// Exercise ---
	_, err := service.Run(
		context.Background(),
		Input{UserID: user.ID(99999), DoFirstNameUpdate: true, FirstName: "x"},
	)

	// Verify ---
	require.ErrorIs(t, err, user.ErrUserDoesNotExist)
}

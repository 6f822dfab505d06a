package register

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	c "userauth/internal/core/domain/common"
	"userauth/internal/core/domain/user"
	service "userauth/internal/core/services/register"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.User = user.User{
		ID:        1,
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		CreatedAt: time.Date(2022, 6, 15, 12, 34, 55, 0, time.UTC),
	}
	result.Token = user.AuthToken("test-auth-token")
	return result, nil
}

func TestSuccessfulRegistration(t *testing.T) {
	// Setup ---
	stub := &stubService{}
	handler := New(stub)
	body := `{
		"username": "mike",
		"email": "Mike@test.test",
		"password": "mikepassword",
		"first_name": "Mike",
		"last_name": "Smith"
	}`
	request := httptest.NewRequest(http.MethodPost, "/register/", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	// Exercise ---
	handler.ServeHTTP(recorder, request)

	// Verify ---
	require.Equal(t, http.StatusCreated, recorder.Code)
	require.NotNil(t, stub.input)
	assert.Equal(t, user.Username("mike"), stub.input.Username)
	assert.Equal(t, c.Email("mike@test.test"), stub.input.Email)

	var result Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, "mike", result.User.Username)
	assert.Equal(t, "test-auth-token", result.Token)
	assert.NotContains(t, recorder.Body.String(), "mikepassword")
	assert.NotContains(t, recorder.Body.String(), "password_hash")
}

func TestValidationErrors(t *testing.T) {
	cases := []struct {
		id   string
		body string
	}{
		{id: "empty body", body: `{}`},
		{id: "invalid json", body: `{what`},
		{id: "missing username", body: `{"email": "a@test.test", "password": "mikepassword"}`},
		{id: "invalid email", body: `{"username": "mike", "email": "not-an-email", "password": "mikepassword"}`},
		{id: "short password", body: `{"username": "mike", "email": "a@test.test", "password": "short"}`},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			stub := &stubService{}
			handler := New(stub)
			request := httptest.NewRequest(http.MethodPost, "/register/", strings.NewReader(testcase.body))
			recorder := httptest.NewRecorder()

			// Exercise ---
			handler.ServeHTTP(recorder, request)

			// Verify ---
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Nil(t, stub.input)
		})
	}
}

func TestDuplicateUsername(t *testing.T) {
	// Setup ---
	handler := New(&stubService{err: user.ErrUsernameAlreadyExists})
	body := `{"username": "mike", "email": "a@test.test", "password": "mikepassword"}`
	request := httptest.NewRequest(http.MethodPost, "/register/", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	// Exercise ---
	handler.ServeHTTP(recorder, request)

	// Verify ---
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "username")
}

func TestDuplicateEmail(t *testing.T) {
	// Setup ---
	handler := New(&stubService{err: user.ErrEmailAlreadyExists})
	body := `{"username": "mike", "email": "a@test.test", "password": "mikepassword"}`
	request := httptest.NewRequest(http.MethodPost, "/register/", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	// Exercise ---
	handler.ServeHTTP(recorder, request)

	// Verify ---
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "email")
}

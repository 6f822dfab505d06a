package me

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	c "userauth/internal/core/domain/common"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services/auth"
	service "userauth/internal/core/services/get_user_by_token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const AUTH_TOKEN = user.AuthToken("test-auth-token")

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
		ID:        user.ID(1),
		Username:  "mike",
		Email:     c.NewEmail("mike@test.test"),
		CreatedAt: time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	return result, nil
}

func TestAuthenticatedUserReturned(t *testing.T) {
	// Setup ---
	stub := &stubService{}
	handler := New(stub)
	request := httptest.NewRequest(http.MethodGet, "/user", nil)
	ctx := context.WithValue(request.Context(), auth.CONTEXT_AUTH_TOKEN_KEY, AUTH_TOKEN)
	recorder := httptest.NewRecorder()

	// Exercise ---
	handler.ServeHTTP(recorder, request.WithContext(ctx))

	// Verify ---
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, stub.input)
	assert.Equal(t, AUTH_TOKEN, stub.input.Token)

	var result Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, int64(1), result.User.ID)
	assert.Equal(t, "mike", result.User.Username)
	assert.Equal(t, "mike@test.test", result.User.Email)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	// Setup ---
	stub := &stubService{}
	handler := New(stub)
	request := httptest.NewRequest(http.MethodGet, "/user", nil)
	recorder := httptest.NewRecorder()

	// Exercise ---
	handler.ServeHTTP(recorder, request)

	// Verify ---
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, stub.input)
}

func TestUnauthorizedForUnknownToken(t *testing.T) {
	cases := []struct {
		id  string
		err error
	}{
		{id: "token does not exist", err: user.ErrTokenDoesNotExist},
		{id: "user does not exist", err: user.ErrUserDoesNotExist},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			stub := &stubService{err: testcase.err}
			handler := New(stub)
			request := httptest.NewRequest(http.MethodGet, "/user", nil)
			ctx := context.WithValue(request.Context(), auth.CONTEXT_AUTH_TOKEN_KEY, AUTH_TOKEN)
			recorder := httptest.NewRecorder()

			// Exercise ---
			handler.ServeHTTP(recorder, request.WithContext(ctx))

			// Verify ---
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

package changepassword

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	c "userauth/internal/core/domain/common"
	"userauth/internal/core/domain/user"
	service "userauth/internal/core/services/change_password"

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
		ID:       user.ID(1),
		Username: "mike",
		Email:    c.NewEmail("mike@test.test"),
	}
	return result, nil
}

func TestPasswordChanged(t *testing.T) {
	// Setup ---
	stub := &stubService{}
	handler := New(stub)
	body := `{"old_password": "old-password", "new_password": "new-password"}`
	request := httptest.NewRequest(http.MethodPost, "/change-password", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	// Exercise ---
	handler.ServeHTTP(recorder, request)

	// Verify ---
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, stub.input)
	assert.Equal(t, user.RawPassword("old-password"), stub.input.OldPassword)
	assert.Equal(t, user.RawPassword("new-password"), stub.input.NewPassword)

	var result Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, "mike", result.User.Username)
}

func TestValidationErrors(t *testing.T) {
	cases := []struct {
		id   string
		body string
	}{
		{id: "empty body", body: `{}`},
		{id: "missing old password", body: `{"new_password": "new-password"}`},
		{id: "missing new password", body: `{"old_password": "old-password"}`},
		{id: "new password too short", body: `{"old_password": "old-password", "new_password": "short"}`},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			stub := &stubService{}
			handler := New(stub)
			request := httptest.NewRequest(http.MethodPost, "/change-password", strings.NewReader(testcase.body))
			recorder := httptest.NewRecorder()

			// Exercise ---
			handler.ServeHTTP(recorder, request)

			// Verify ---
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Nil(t, stub.input)
		})
	}
}

func TestErrorStatuses(t *testing.T) {
	cases := []struct {
		id             string
		err            error
		expectedStatus int
	}{
		{id: "unknown token", err: user.ErrTokenDoesNotExist, expectedStatus: http.StatusUnauthorized},
		{id: "unknown user", err: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnauthorized},
		{id: "wrong old password", err: user.ErrInvalidCredentials, expectedStatus: http.StatusBadRequest},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			handler := New(&stubService{err: testcase.err})
			body := `{"old_password": "old-password", "new_password": "new-password"}`
			request := httptest.NewRequest(http.MethodPost, "/change-password", strings.NewReader(body))
			recorder := httptest.NewRecorder()

			// Exercise ---
			handler.ServeHTTP(recorder, request)

			// Verify ---
			assert.Equal(t, testcase.expectedStatus, recorder.Code)
		})
	}
}

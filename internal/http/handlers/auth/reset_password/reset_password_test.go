package resetpassword

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"userauth/internal/core/domain/user"
	service "userauth/internal/core/services/send_password_reset_email"

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
	result.Token = user.PasswordResetToken("test-reset-token")
	return result, nil
}

func TestEmailAcceptedAndSent(t *testing.T) {
	// Setup ---
	stub := &stubService{}
	handler := New(stub, false)
	body := `{"email": "mike@test.test"}`
	request := httptest.NewRequest(http.MethodPost, "/reset-password/", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	// Exercise ---
	handler.ServeHTTP(recorder, request)

	// Verify ---
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, stub.input)
	assert.Equal(t, service.DefaultSubject, stub.input.Subject)
	assert.Empty(t, recorder.Header().Get(TEST_RESET_TOKEN_HEADER))
}

func TestCustomSubject(t *testing.T) {
	// Setup ---
	stub := &stubService{}
	handler := New(stub, false)
	body := `{"email": "mike@test.test", "subject": "Reset it"}`
	request := httptest.NewRequest(http.MethodPost, "/reset-password/", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	// Exercise ---
	handler.ServeHTTP(recorder, request)

	// Verify ---
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, stub.input)
	assert.Equal(t, "Reset it", stub.input.Subject)
}

func TestTokenExposedInTestMode(t *testing.T) {
	// Setup ---
	handler := New(&stubService{}, true)
	body := `{"email": "mike@test.test"}`
	request := httptest.NewRequest(http.MethodPost, "/reset-password/", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	// Exercise ---
	handler.ServeHTTP(recorder, request)

	// Verify ---
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "test-reset-token", recorder.Header().Get(TEST_RESET_TOKEN_HEADER))
}

func TestUnknownEmail(t *testing.T) {
	// Setup ---
	handler := New(&stubService{err: user.ErrUserDoesNotExist}, false)
	body := `{"email": "unknown@test.test"}`
	request := httptest.NewRequest(http.MethodPost, "/reset-password/", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	// Exercise ---
	handler.ServeHTTP(recorder, request)

	// Verify ---
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestEmailDeliveryNotConfigured(t *testing.T) {
	// Setup ---
	handler := New(&stubService{err: user.ErrEmailDeliveryNotConfigured}, false)
	body := `{"email": "mike@test.test"}`
	request := httptest.NewRequest(http.MethodPost, "/reset-password/", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	// Exercise ---
	handler.ServeHTTP(recorder, request)

	// Verify ---
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestInvalidEmail(t *testing.T) {
	// Setup ---
	stub := &stubService{}
	handler := New(stub, false)
	body := `{"email": "not-an-email"}`
	request := httptest.NewRequest(http.MethodPost, "/reset-password/", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	// Exercise ---
	handler.ServeHTTP(recorder, request)

	// Verify ---
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Nil(t, stub.input)
}

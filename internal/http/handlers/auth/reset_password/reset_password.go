package resetpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "userauth/internal/core/domain/common"
	e "userauth/internal/core/domain/errors"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services"
	service "userauth/internal/core/services/send_password_reset_email"
	"userauth/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// TEST_RESET_TOKEN_HEADER carries the generated token back to the caller in
// test mode, so end-to-end tests can follow the reset flow without a mailbox.
const TEST_RESET_TOKEN_HEADER = "x-test-password-reset-token"

type Handler struct {
	service    services.Service[service.Input, service.Result]
	isTestMode bool
}

func New(
	service services.Service[service.Input, service.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
}

type Result struct {
	Detail string `json:"detail"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 254)),
		validation.Field(&i.Subject, validation.Length(0, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	subject := input.Subject
	if subject == "" {
		subject = service.DefaultSubject
	}
	result, err := h.service.Run(
		r.Context(),
		service.Input{Email: c.NewEmail(input.Email), Subject: subject},
	)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderError(rw, "user with the email does not exist", http.StatusNotFound)
		return
	}
	if errors.Is(err, user.ErrEmailDeliveryNotConfigured) ||
		errors.Is(err, user.ErrEmailDeliveryFailed) {
		response.RenderError(rw, "could not send password reset email", http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	if h.isTestMode {
		rw.Header().Set(TEST_RESET_TOKEN_HEADER, string(result.Token))
	}
	response.Render(rw, Result{Detail: "password reset email has been sent"}, http.StatusOK)
}

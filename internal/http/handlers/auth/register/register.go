package register

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "userauth/internal/core/domain/common"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services"
	"userauth/internal/core/services/register"
	"userauth/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[register.Input, register.Result]
}

func New(
	service services.Service[register.Input, register.Result],
) *Handler {
	return &Handler{service: service}
}

type Input struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Result struct {
	User  response.User `json:"user"`
	Token string        `json:"token"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required, validation.Length(1, 150)),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 254)),
		validation.Field(&i.Password, validation.Required, validation.Length(8, 512)),
		validation.Field(&i.FirstName, validation.Length(0, 150)),
		validation.Field(&i.LastName, validation.Length(0, 150)),
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

	result, err := h.service.Run(
		r.Context(),
		register.Input{
			Username:  user.Username(input.Username),
			Email:     c.NewEmail(input.Email),
			Password:  user.RawPassword(input.Password),
			FirstName: input.FirstName,
			LastName:  input.LastName,
		},
	)
	if errors.Is(err, user.ErrUsernameAlreadyExists) {
		response.RenderError(rw, "a user with that username already exists", http.StatusBadRequest)
		return
	}
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		response.RenderError(rw, "a user with that email already exists", http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	createdUser := response.User{}
	createdUser.FromDomainUser(result.User)
	response.Render(rw, Result{User: createdUser, Token: string(result.Token)}, http.StatusCreated)
}

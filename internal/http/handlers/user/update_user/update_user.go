package updateuser

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "userauth/internal/core/domain/common"
	e "userauth/internal/core/domain/errors"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services"
	service "userauth/internal/core/services/update_user"
	"userauth/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

// Absent fields keep their stored values.
type Input struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type Result struct {
	User response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, is.Email, validation.Length(0, 254)),
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

	serviceInput := service.Input{}
	if input.Email != nil {
		serviceInput.DoEmailUpdate = true
		serviceInput.Email = c.NewEmail(*input.Email)
	}
	if input.FirstName != nil {
		serviceInput.DoFirstNameUpdate = true
		serviceInput.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		serviceInput.DoLastNameUpdate = true
		serviceInput.LastName = *input.LastName
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist), errors.Is(err, user.ErrTokenDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.RenderError(rw, "a user with that email already exists", http.StatusBadRequest)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	updatedUser := response.User{}
	updatedUser.FromDomainUser(result.User)
	response.Render(rw, Result{User: updatedUser}, http.StatusOK)
}

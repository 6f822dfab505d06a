package resetpasswordconfirmation

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"
	e "userauth/internal/core/domain/errors"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services"
	resetpassword "userauth/internal/core/services/reset_password"
	validatetoken "userauth/internal/core/services/validate_password_reset_token"
	"userauth/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"

	validation "github.com/go-ozzo/ozzo-validation"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Handler struct {
	validateService services.Service[validatetoken.Input, validatetoken.Result]
	resetService    services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	validateService services.Service[validatetoken.Input, validatetoken.Result],
	resetService services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if validateService == nil {
		panic(e.NewNilArgumentError("validateService"))
	}
	if resetService == nil {
		panic(e.NewNilArgumentError("resetService"))
	}
	return &Handler{validateService: validateService, resetService: resetService}
}

type Input struct {
	NewPassword string `json:"new_password"`
}

type Result struct {
	Token string `json:"token"`
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.NewPassword, validation.Required, validation.Length(8, 512)),
	)
}

// RenderForm serves the password reset page. An invalid or expired link gets
// a generic invalid page: unknown users and bad tokens are indistinguishable
// to the visitor.
func (h *Handler) RenderForm(rw http.ResponseWriter, r *http.Request) {
	result, err := h.validateService.Run(
		r.Context(),
		validatetoken.Input{
			EncodedUserID: chi.URLParam(r, "uidb64"),
			Token:         user.PasswordResetToken(chi.URLParam(r, "token")),
		},
	)
	if errors.Is(err, user.ErrUserDoesNotExist) ||
		errors.Is(err, user.ErrInvalidPasswordResetToken) {
		renderPage(rw, "invalid.html", nil)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	renderPage(rw, "form.html", map[string]interface{}{"Username": string(result.User.Username)})
}

func (h *Handler) ConfirmReset(rw http.ResponseWriter, r *http.Request) {
	input, err := parseInput(r)
	if err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.resetService.Run(
		r.Context(),
		resetpassword.Input{
			EncodedUserID: chi.URLParam(r, "uidb64"),
			Token:         user.PasswordResetToken(chi.URLParam(r, "token")),
			NewPassword:   user.RawPassword(input.NewPassword),
		},
	)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderError(rw, "user does not exist", http.StatusNotFound)
		return
	}
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		response.RenderError(rw, "password reset token is invalid or has expired", http.StatusForbidden)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, Result{Token: string(result.Token)}, http.StatusOK)
}

// parseInput accepts both the JSON API shape and the browser form post.
func parseInput(r *http.Request) (input Input, err error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		err = json.NewDecoder(r.Body).Decode(&input)
		if errors.Is(err, io.EOF) {
			return input, nil
		}
		return input, err
	}
	if err = r.ParseForm(); err != nil {
		return input, err
	}
	input.NewPassword = r.PostForm.Get("new_password")
	return input, nil
}

func renderPage(rw http.ResponseWriter, name string, data interface{}) {
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(http.StatusOK)
	templates.ExecuteTemplate(rw, name, data)
}

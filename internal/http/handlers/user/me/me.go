package me

import (
	"errors"
	"net/http"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services"
	"userauth/internal/core/services/auth"
	service "userauth/internal/core/services/get_user_by_token"
	"userauth/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	return &Handler{service: service}
}

type Result struct {
	User response.User `json:"user"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := r.Context().Value(auth.CONTEXT_AUTH_TOKEN_KEY).(user.AuthToken)
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{Token: token})
	if errors.Is(err, user.ErrUserDoesNotExist) || errors.Is(err, user.ErrTokenDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	authenticatedUser := response.User{}
	authenticatedUser.FromDomainUser(result.User)
	response.Render(rw, Result{User: authenticatedUser}, http.StatusOK)
}

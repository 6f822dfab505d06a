package listusers

import (
	"errors"
	"net/http"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services"
	listusers "userauth/internal/core/services/list_users"
	"userauth/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[listusers.Input, listusers.Result]
}

func New(
	service services.Service[listusers.Input, listusers.Result],
) *Handler {
	return &Handler{service: service}
}

type Result struct {
	Users []response.User `json:"users"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), listusers.Input{})
	if errors.Is(err, user.ErrUserDoesNotExist) || errors.Is(err, user.ErrTokenDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if errors.Is(err, user.ErrPermissionDenied) {
		response.RenderForbidden(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	users := make([]response.User, len(result.Users))
	for ix, domainUser := range result.Users {
		users[ix].FromDomainUser(domainUser)
	}
	response.Render(rw, Result{Users: users}, http.StatusOK)
}

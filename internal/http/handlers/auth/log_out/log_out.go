package logout

import (
	"net/http"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services"
	"userauth/internal/core/services/auth"
	logout "userauth/internal/core/services/log_out"
	"userauth/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[logout.Input, logout.Result]
}

func New(
	service services.Service[logout.Input, logout.Result],
) *Handler {
	return &Handler{service: service}
}

type Result struct {
	Detail string `json:"detail"`
}

// ServeHTTP revokes the request's auth token. A missing or already revoked
// token still gets 200: the caller's goal is "token no longer valid" and
// that is already true.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := r.Context().Value(auth.CONTEXT_AUTH_TOKEN_KEY).(user.AuthToken)
	if ok {
		if _, err := h.service.Run(r.Context(), logout.Input{Token: token}); err != nil {
			response.RenderInternalError(rw)
			return
		}
	}
	response.Render(rw, Result{Detail: "logged out"}, http.StatusOK)
}

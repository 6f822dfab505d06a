package app

import (
	"fmt"
	"net/http"
	"userauth/internal/app/deps"
	"userauth/internal/app/services"
	"userauth/internal/http/handlers/auth"
	login "userauth/internal/http/handlers/auth/log_in"
	logout "userauth/internal/http/handlers/auth/log_out"
	"userauth/internal/http/handlers/auth/register"
	resetpassword "userauth/internal/http/handlers/auth/reset_password"
	resetpasswordconfirmation "userauth/internal/http/handlers/auth/reset_password_confirmation"
	changepassword "userauth/internal/http/handlers/user/change_password"
	listusers "userauth/internal/http/handlers/user/list_users"
	me "userauth/internal/http/handlers/user/me"
	updateuser "userauth/internal/http/handlers/user/update_user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	confirmation := resetpasswordconfirmation.New(s.ValidatePasswordResetToken, s.ResetPassword)

	authRouter := chi.NewRouter()
	authRouter.Use(auth.SetAuthTokenToContext)
	authRouter.Method(http.MethodPost, "/register/", register.New(s.Register))
	authRouter.Method(http.MethodPost, "/login/", login.New(s.LogIn))
	authRouter.Method(http.MethodPost, "/logout/", logout.New(s.LogOut))
	authRouter.Method(http.MethodGet, "/user/", me.New(s.GetUserByToken))
	authRouter.Method(http.MethodGet, "/users/", listusers.New(s.ListUsers))
	authRouter.Method(http.MethodPut, "/update-user/", updateuser.New(s.UpdateUser))
	authRouter.Method(http.MethodPatch, "/update-user/", updateuser.New(s.UpdateUser))
	authRouter.Method(http.MethodPost, "/change-password/", changepassword.New(s.ChangePassword))
	authRouter.Method(
		http.MethodPost,
		"/reset-password/",
		resetpassword.New(s.SendPasswordResetEmail, isTestMode),
	)
	authRouter.Get("/reset_password_confirmation/{uidb64}/{token}/", confirmation.RenderForm)
	authRouter.Post("/reset_password_confirmation/{uidb64}/{token}/", confirmation.ConfirmReset)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/api/auth", authRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}

package services

import (
	"userauth/internal/app/deps"
	"userauth/internal/core/services"
	"userauth/internal/core/services/auth"
	changepassword "userauth/internal/core/services/change_password"
	getuserbytoken "userauth/internal/core/services/get_user_by_token"
	listusers "userauth/internal/core/services/list_users"
	login "userauth/internal/core/services/log_in"
	logout "userauth/internal/core/services/log_out"
	"userauth/internal/core/services/register"
	resetpassword "userauth/internal/core/services/reset_password"
	sendpasswordresetemail "userauth/internal/core/services/send_password_reset_email"
	updateuser "userauth/internal/core/services/update_user"
	validatepasswordresettoken "userauth/internal/core/services/validate_password_reset_token"
)

type Services struct {
	Register       services.Service[register.Input, register.Result]
	LogIn          services.Service[login.Input, login.Result]
	LogOut         services.Service[logout.Input, logout.Result]
	GetUserByToken services.Service[getuserbytoken.Input, getuserbytoken.Result]
	ListUsers      services.Service[listusers.Input, listusers.Result]
	UpdateUser     services.Service[updateuser.Input, updateuser.Result]
	ChangePassword services.Service[changepassword.Input, changepassword.Result]

	SendPasswordResetEmail     services.Service[sendpasswordresetemail.Input, sendpasswordresetemail.Result]
	ValidatePasswordResetToken services.Service[validatepasswordresettoken.Input, validatepasswordresettoken.Result]
	ResetPassword              services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.Register = register.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.AuthTokenGenerator,
		deps.Now,
	)
	s.LogIn = login.New(
		deps.Logger,
		deps.UserRepository,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.AuthTokenGenerator,
		deps.Now,
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.TokenRepository,
	)
	s.GetUserByToken = getuserbytoken.New(
		deps.Logger,
		deps.TokenRepository,
	)
	s.ListUsers = auth.WithAuthentication(
		deps.TokenRepository,
		listusers.New(
			deps.Logger,
			deps.UserRepository,
		),
	)
	s.UpdateUser = auth.WithAuthentication(
		deps.TokenRepository,
		updateuser.New(
			deps.Logger,
			deps.UserRepository,
		),
	)
	s.ChangePassword = auth.WithAuthentication(
		deps.TokenRepository,
		changepassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
		),
	)
	s.SendPasswordResetEmail = sendpasswordresetemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetter,
		deps.PasswordResetTokenSender,
	)
	s.ValidatePasswordResetToken = validatepasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetter,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.UnitOfWork,
		deps.PasswordResetter,
		deps.PasswordHasher,
		deps.AuthTokenGenerator,
		deps.Now,
	)

	return s
}

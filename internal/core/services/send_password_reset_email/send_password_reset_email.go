package sendpasswordresetemail

import (
	"context"
	"errors"
	"time"
	c "userauth/internal/core/domain/common"
	e "userauth/internal/core/domain/errors"
	"userauth/internal/core/domain/logging"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services"
)

const DefaultSubject = "Password Reset email"

// Mail transport is a blocking network call; cap it so a slow mail host
// cannot hold the request longer than this.
const sendTimeout = 30 * time.Second

type Input struct {
	Email   c.Email
	Subject string
}

type Result struct {
	Token user.PasswordResetToken
}

type service struct {
	log              logging.Logger
	userRepository   user.UserRepository
	passwordResetter user.PasswordResetter
	tokenSender      user.PasswordResetTokenSender
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordResetter user.PasswordResetter,
	tokenSender user.PasswordResetTokenSender,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordResetter == nil {
		panic(e.NewNilArgumentError("passwordResetter"))
	}
	if tokenSender == nil {
		panic(e.NewNilArgumentError("tokenSender"))
	}
	return &service{
		log:              log,
		userRepository:   userRepository,
		passwordResetter: passwordResetter,
		tokenSender:      tokenSender,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by email for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	subject := input.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	token := s.passwordResetter.GenerateToken(u)

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	err = s.tokenSender.SendToken(sendCtx, u, token, subject)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrEmailDeliveryNotConfigured) {
		s.log.Warning(ctx, "Password reset email is not configured.", logging.Entry("userID", u.ID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset email.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, user.ErrEmailDeliveryFailed
	}

	s.log.Info(ctx, "Password reset email sent.", logging.Entry("userID", u.ID))
	return Result{Token: token}, nil
}

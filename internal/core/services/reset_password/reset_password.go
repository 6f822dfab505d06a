package resetpassword

import (
	"context"
	"errors"
	"time"
	e "userauth/internal/core/domain/errors"
	"userauth/internal/core/domain/logging"
	uow "userauth/internal/core/domain/unit_of_work"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services"
)

type Input struct {
	EncodedUserID string
	Token         user.PasswordResetToken
	NewPassword   user.RawPassword
}

type Result struct {
	User  user.User
	Token user.AuthToken
}

type service struct {
	log              logging.Logger
	userRepository   user.UserRepository
	unitOfWork       uow.UnitOfWork
	passwordResetter user.PasswordResetter
	passwordHasher   user.PasswordHasher
	tokenGenerator   user.AuthTokenGenerator
	now              func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	unitOfWork uow.UnitOfWork,
	passwordResetter user.PasswordResetter,
	passwordHasher user.PasswordHasher,
	tokenGenerator user.AuthTokenGenerator,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordResetter == nil {
		panic(e.NewNilArgumentError("passwordResetter"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:              log,
		userRepository:   userRepository,
		unitOfWork:       unitOfWork,
		passwordResetter: passwordResetter,
		passwordHasher:   passwordHasher,
		tokenGenerator:   tokenGenerator,
		now:              now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	// Malformed user ids and unknown users are indistinguishable to the
	// caller, so enumeration through this endpoint is not possible.
	userID, ok := user.DecodeUserID(input.EncodedUserID)
	if !ok {
		return result, user.ErrUserDoesNotExist
	}
	u, err := s.userRepository.GetByID(ctx, userID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("userID", userID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("userID", userID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if !s.passwordResetter.ValidateToken(u, input.Token) {
		return result, user.ErrInvalidPasswordResetToken
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	if err := uow.Users().SetPassword(ctx, u.ID, newPasswordHash); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, user.ErrUserDoesNotExist) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if err := uow.Users().SetLastLogin(ctx, u.ID, s.now()); err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not update last login for user.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	authToken, err := uow.Tokens().GetOrCreate(ctx, user.CreateTokenInput{
		UserID:    u.ID,
		Token:     s.tokenGenerator.GenerateToken(),
		CreatedAt: s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create auth token for user.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(ctx, "Could not commit unit of work.", logging.Entry("err", err))
		return result, err
	}

	resetUser, err := s.userRepository.GetByID(ctx, u.ID)
	if err != nil {
		resetUser = u
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("userID", u.ID))
	return Result{User: resetUser, Token: authToken}, nil
}

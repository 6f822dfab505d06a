package getuserbytoken

import (
	"context"
	"errors"
	e "userauth/internal/core/domain/errors"
	"userauth/internal/core/domain/logging"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services"
)

type Input struct {
	Token user.AuthToken
}

type Result struct {
	User user.User
}

type service struct {
	log             logging.Logger
	tokenRepository user.TokenRepository
}

func New(
	log logging.Logger,
	tokenRepository user.TokenRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	return &service{
		log:             log,
		tokenRepository: tokenRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.tokenRepository.GetUserByToken(ctx, input.Token)
	if errors.Is(err, context.Canceled) || errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not get user by auth token.", logging.Entry("err", err))
		return result, err
	}
	return Result{User: u}, nil
}

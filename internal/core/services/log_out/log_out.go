package logout

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

type Result struct{}

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

// Run revokes the token. Logout is idempotent: a token that does not exist
// is treated as already revoked.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	userID, err := s.tokenRepository.Delete(ctx, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrTokenDoesNotExist) {
		s.log.Info(ctx, "Auth token already revoked.")
		return result, nil
	}
	if err != nil {
		s.log.Error(ctx, "Could not delete auth token.", logging.Entry("err", err))
		return result, err
	}

	s.log.Info(ctx, "User logged out, auth token revoked.", logging.Entry("userID", userID))
	return result, nil
}

package auth

import (
	"context"
	e "userauth/internal/core/domain/errors"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type service[T Input, S any] struct {
	tokenRepository user.TokenRepository
	inner           services.Service[T, S]
}

// WithAuthentication resolves the bearer token from the request context and
// injects the authenticated user into the inner service's input.
func WithAuthentication[T Input, S any](
	tokenRepository user.TokenRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		tokenRepository: tokenRepository,
		inner:           inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	authToken, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(user.AuthToken)
	if !ok {
		return result, user.ErrUserDoesNotExist
	}
	u, err := s.tokenRepository.GetUserByToken(ctx, authToken)
	if err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}

package uow

import (
	"context"
	"userauth/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Tokens() user.TokenRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}

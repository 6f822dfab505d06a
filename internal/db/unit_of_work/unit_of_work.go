package uow

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	e "userauth/internal/core/domain/errors"
	uow "userauth/internal/core/domain/unit_of_work"
	"userauth/internal/core/domain/user"
	dbuser "userauth/internal/db/user"
)

type PgxUnitOfWorkContext struct {
	tx     pgx.Tx
	users  *dbuser.PgxUserRepository
	tokens user.TokenRepository
}

func NewPgxUnitOfWorkContext(tx pgx.Tx, tokens user.TokenRepository) *PgxUnitOfWorkContext {
	if tokens == nil {
		tokens = dbuser.NewPgxTokenRepository(tx)
	}
	return &PgxUnitOfWorkContext{
		tx:     tx,
		users:  dbuser.NewPgxUserRepository(tx),
		tokens: tokens,
	}
}

func (c *PgxUnitOfWorkContext) Rollback(ctx context.Context) error {
	return c.tx.Rollback(ctx)
}

func (c *PgxUnitOfWorkContext) Commit(ctx context.Context) error {
	return c.tx.Commit(ctx)
}

func (c *PgxUnitOfWorkContext) Users() user.UserRepository {
	return c.users
}

func (c *PgxUnitOfWorkContext) Tokens() user.TokenRepository {
	return c.tokens
}

type PgxUnitOfWork struct {
	pool   *pgxpool.Pool
	tokens user.TokenRepository
}

func NewPgxUnitOfWork(pool *pgxpool.Pool) *PgxUnitOfWork {
	if pool == nil {
		panic(e.NewNilArgumentError("pool"))
	}
	return &PgxUnitOfWork{pool: pool}
}

// NewPgxUnitOfWorkWithTokenRepository keeps user writes transactional but
// routes token operations to an external store (e.g. Redis). Token writes
// through such a unit of work are not rolled back with it.
func NewPgxUnitOfWorkWithTokenRepository(
	pool *pgxpool.Pool,
	tokens user.TokenRepository,
) *PgxUnitOfWork {
	if pool == nil {
		panic(e.NewNilArgumentError("pool"))
	}
	if tokens == nil {
		panic(e.NewNilArgumentError("tokens"))
	}
	return &PgxUnitOfWork{pool: pool, tokens: tokens}
}

func (u *PgxUnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	return NewPgxUnitOfWorkContext(tx, u.tokens), nil
}

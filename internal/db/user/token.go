package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	e "userauth/internal/core/domain/errors"
	"userauth/internal/core/domain/user"
	"userauth/internal/db"
)

type PgxTokenRepository struct {
	db db.DBTX
}

func NewPgxTokenRepository(db db.DBTX) *PgxTokenRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxTokenRepository{db: db}
}

// GetOrCreate returns the user's existing token or inserts the provided one.
// The ON CONFLICT no-op update lets RETURNING yield the winner either way,
// so concurrent logins converge on a single token.
func (r *PgxTokenRepository) GetOrCreate(
	ctx context.Context,
	input user.CreateTokenInput,
) (user.AuthToken, error) {
	var token string
	err := r.db.QueryRow(
		ctx,
		`INSERT INTO auth_token (user_id, token, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING token`,
		int64(input.UserID),
		string(input.Token),
		input.CreatedAt,
	).Scan(&token)
	if err != nil {
		return "", fmt.Errorf("could not get or create auth token: %w", err)
	}
	return user.AuthToken(token), nil
}

func (r *PgxTokenRepository) GetUserByToken(
	ctx context.Context,
	token user.AuthToken,
) (user.User, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name,
		        u.is_admin, u.created_at, u.last_login_at
		 FROM "user" AS u
		 JOIN auth_token AS t ON t.user_id = u.id
		 WHERE t.token = $1`,
		string(token),
	)
	return scanKnownUser(row)
}

func (r *PgxTokenRepository) Delete(ctx context.Context, token user.AuthToken) (user.ID, error) {
	var userID int64
	err := r.db.QueryRow(
		ctx,
		`DELETE FROM auth_token WHERE token = $1 RETURNING user_id`,
		string(token),
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, user.ErrTokenDoesNotExist
		}
		return 0, fmt.Errorf("could not delete auth token: %w", err)
	}
	return user.ID(userID), nil
}

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	c "userauth/internal/core/domain/common"
	e "userauth/internal/core/domain/errors"
	"userauth/internal/core/domain/user"
	"userauth/internal/db"
)

const (
	uniqueViolationCode = "23505"
	usernameUniqueIndex = "user_username_key"
	emailUniqueIndex    = "user_email_key"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, is_admin, created_at, last_login_at`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxUserRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (user.User, error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (username, email, password_hash, first_name, last_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		string(input.Username),
		string(input.Email),
		string(input.PasswordHash),
		input.FirstName,
		input.LastName,
		input.CreatedAt,
	)
	u, err := scanUser(row)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == uniqueViolationCode {
			switch pgerr.ConstraintName {
			case usernameUniqueIndex:
				return user.User{}, user.ErrUsernameAlreadyExists
			case emailUniqueIndex:
				return user.User{}, user.ErrEmailAlreadyExists
			}
		}
		return user.User{}, fmt.Errorf("could not create user: %w", err)
	}
	return u, nil
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (user.User, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE id = $1`,
		int64(id),
	)
	return scanKnownUser(row)
}

func (r *PgxUserRepository) GetByUsername(ctx context.Context, username user.Username) (user.User, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE username = $1`,
		string(username),
	)
	return scanKnownUser(row)
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (user.User, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE email = $1`,
		string(email),
	)
	return scanKnownUser(row)
}

func (r *PgxUserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+userColumns+` FROM "user" ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read user rows: %w", err)
	}
	return users, nil
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (user.User, error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET
			email = CASE WHEN $2 THEN $3 ELSE email END,
			first_name = CASE WHEN $4 THEN $5 ELSE first_name END,
			last_name = CASE WHEN $6 THEN $7 ELSE last_name END
		 WHERE id = $1
		 RETURNING `+userColumns,
		int64(input.ID),
		input.DoEmailUpdate,
		string(input.Email),
		input.DoFirstNameUpdate,
		input.FirstName,
		input.DoLastNameUpdate,
		input.LastName,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserDoesNotExist
		}
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == uniqueViolationCode {
			return user.User{}, user.ErrEmailAlreadyExists
		}
		return user.User{}, fmt.Errorf("could not update user: %w", err)
	}
	return u, nil
}

func (r *PgxUserRepository) SetPassword(
	ctx context.Context,
	id user.ID,
	passwordHash user.PasswordHash,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_hash = $2 WHERE id = $1`,
		int64(id),
		string(passwordHash),
	)
	if err != nil {
		return fmt.Errorf("could not set user password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetLastLogin(ctx context.Context, id user.ID, at time.Time) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET last_login_at = $2 WHERE id = $1`,
		int64(id),
		at,
	)
	if err != nil {
		return fmt.Errorf("could not set user last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func scanKnownUser(row pgx.Row) (user.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserDoesNotExist
		}
		return user.User{}, fmt.Errorf("could not read user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var (
		u            user.User
		id           int64
		username     string
		email        string
		passwordHash string
		lastLoginAt  sql.NullTime
	)
	err := row.Scan(
		&id,
		&username,
		&email,
		&passwordHash,
		&u.FirstName,
		&u.LastName,
		&u.IsAdmin,
		&u.CreatedAt,
		&lastLoginAt,
	)
	if err != nil {
		return user.User{}, err
	}
	u.ID = user.ID(id)
	u.Username = user.Username(username)
	u.Email = c.NewEmail(email)
	u.PasswordHash = user.PasswordHash(passwordHash)
	if lastLoginAt.Valid {
		u.LastLoginAt = c.NewOptional(lastLoginAt.Time.UTC(), true)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

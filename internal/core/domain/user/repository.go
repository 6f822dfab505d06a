package user

import (
	"context"
	"time"
	c "userauth/internal/core/domain/common"
)

type CreateUserInput struct {
	Username     Username
	Email        c.Email
	PasswordHash PasswordHash
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}

type UpdateUserInput struct {
	ID                ID
	DoFirstNameUpdate bool
	FirstName         string
	DoLastNameUpdate  bool
	LastName          string
	DoEmailUpdate     bool
	Email             c.Email
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByUsername(ctx context.Context, username Username) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, input UpdateUserInput) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
	SetLastLogin(ctx context.Context, id ID, at time.Time) error
}

type CreateTokenInput struct {
	UserID    ID
	Token     AuthToken
	CreatedAt time.Time
}

// TokenRepository maps opaque auth tokens to users. GetOrCreate must be
// atomic: concurrent logins for the same user always observe one token.
type TokenRepository interface {
	GetOrCreate(ctx context.Context, input CreateTokenInput) (AuthToken, error)
	GetUserByToken(ctx context.Context, token AuthToken) (User, error)
	Delete(ctx context.Context, token AuthToken) (userID ID, err error)
}

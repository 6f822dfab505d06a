package user

import (
	"fmt"
	"time"
	c "userauth/internal/core/domain/common"
	e "userauth/internal/core/domain/errors"
)

type ID int64

type Username string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// AuthToken is an opaque bearer credential, one active token per user.
type AuthToken string

type User struct {
	ID           ID
	Username     Username
	Email        c.Email
	PasswordHash PasswordHash
	FirstName    string
	LastName     string
	IsAdmin      bool
	CreatedAt    time.Time
	LastLoginAt  c.Optional[time.Time]
}

func (u *User) Validate() error {
	if u.Username == "" {
		return e.NewInvalidStateError(fmt.Sprintf("username is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	return nil
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

type AuthTokenGenerator interface {
	GenerateToken() AuthToken
}

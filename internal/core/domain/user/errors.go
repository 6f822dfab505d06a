package user

import (
	"errors"
)

var (
	ErrUsernameAlreadyExists     = errors.New("username already exists")
	ErrEmailAlreadyExists        = errors.New("email already exists")
	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrTokenDoesNotExist         = errors.New("auth token does not exist")
	ErrPermissionDenied          = errors.New("permission denied")
	ErrInvalidPasswordResetToken = errors.New("invalid password reset token")
)

var (
	ErrEmailDeliveryNotConfigured = errors.New("email delivery is not configured")
	ErrEmailDeliveryFailed        = errors.New("email delivery failed")
)

package user

import (
	"context"
	"encoding/base64"
	"strconv"
	"strings"
)

type PasswordResetToken string

type PasswordResetter interface {
	GenerateToken(user User) PasswordResetToken
	ValidateToken(user User, token PasswordResetToken) bool
}

type PasswordResetTokenSender interface {
	SendToken(ctx context.Context, user User, token PasswordResetToken, subject string) error
}

// EncodeUserID renders a user id the way it travels in reset links:
// url-safe base64 of the decimal id, no padding.
func EncodeUserID(id ID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(int64(id), 10)))
}

// DecodeUserID tolerates padded input; any malformed value decodes to not-ok
// so callers can collapse it with the unknown-user case.
func DecodeUserID(encoded string) (ID, bool) {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return ID(0), false
	}
	rawID, err := strconv.ParseInt(string(decoded), 10, 64)
	if err != nil || rawID <= 0 {
		return ID(0), false
	}
	return ID(rawID), true
}

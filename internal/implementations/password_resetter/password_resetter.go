package passwordresetter

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"
	"userauth/internal/core/domain/user"
)

var saltChars = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// HMAC issues stateless password reset tokens. The signature covers the
// user's id, password hash and last login, so the token stops verifying as
// soon as either changes; expiry is an explicit wall-clock check against the
// embedded issue timestamp.
type HMAC struct {
	secretKey     []byte
	validDuration time.Duration
	now           func() time.Time
}

func NewHMAC(secretKey string, validDuration time.Duration, now func() time.Time) *HMAC {
	return &HMAC{
		secretKey:     []byte(secretKey),
		validDuration: validDuration,
		now:           now,
	}
}

func (h *HMAC) GenerateToken(u user.User) user.PasswordResetToken {
	nowTs := h.now().Unix()
	salt := h.getRandomSalt()
	mac := h.getMac(u, nowTs, salt)
	b64 := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf("%d-%s-%s", nowTs, salt, mac)))
	return user.PasswordResetToken(b64)
}

func (h *HMAC) ValidateToken(u user.User, token user.PasswordResetToken) bool {
	decodedToken, err := base64.RawURLEncoding.DecodeString(string(token))
	if err != nil {
		return false
	}
	parts := strings.SplitN(string(decodedToken), "-", 3)
	if len(parts) != 3 {
		return false
	}
	ts, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return false
	}
	actualDuration := time.Duration(h.now().Unix()-ts) * time.Second
	if actualDuration > h.validDuration {
		return false
	}
	salt := parts[1]
	mac := parts[2]
	expectedMac := h.getMac(u, ts, salt)
	return subtle.ConstantTimeCompare([]byte(mac), []byte(expectedMac)) == 1
}

func (h *HMAC) getMac(u user.User, ts int64, salt string) string {
	lastLoginTs := int64(0)
	if u.LastLoginAt.IsPresent {
		lastLoginTs = u.LastLoginAt.Value.Unix()
	}
	hasher := hmac.New(sha256.New, h.secretKey)
	io.WriteString(
		hasher,
		fmt.Sprintf("%d-%d-%s-%s-%d", u.ID, ts, salt, string(u.PasswordHash), lastLoginTs),
	)
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

func (h *HMAC) getRandomSalt() string {
	b := make([]rune, 5)
	for i := range b {
		b[i] = saltChars[rand.Intn(len(saltChars))]
	}
	return string(b)
}

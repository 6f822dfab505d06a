package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"
	c "userauth/internal/core/domain/common"
)

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Username == input.Username {
			return u, ErrUsernameAlreadyExists
		}
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByUsername(ctx context.Context, username Username) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) List(ctx context.Context) ([]User, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list users")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	users := make([]User, len(r.Users))
	copy(users, r.Users)
	return users, nil
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == input.ID {
			if input.DoFirstNameUpdate {
				r.Users[ix].FirstName = input.FirstName
			}
			if input.DoLastNameUpdate {
				r.Users[ix].LastName = input.LastName
			}
			if input.DoEmailUpdate {
				r.Users[ix].Email = input.Email
			}
			return r.Users[ix], nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetLastLogin(ctx context.Context, id ID, at time.Time) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].LastLoginAt = c.NewOptional(at, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

type FakeTokenRepository struct {
	UserIDByToken  map[AuthToken]ID
	TokenByUserID  map[ID]AuthToken
	UserRepository UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeTokenRepository(userRepository UserRepository) *FakeTokenRepository {
	return &FakeTokenRepository{
		UserIDByToken:  make(map[AuthToken]ID),
		TokenByUserID:  make(map[ID]AuthToken),
		UserRepository: userRepository,
	}
}

func (r *FakeTokenRepository) GetOrCreate(ctx context.Context, input CreateTokenInput) (t AuthToken, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not create auth token %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if existing, ok := r.TokenByUserID[input.UserID]; ok {
		return existing, nil
	}
	r.TokenByUserID[input.UserID] = input.Token
	r.UserIDByToken[input.Token] = input.UserID
	return input.Token, nil
}

func (r *FakeTokenRepository) GetUserByToken(ctx context.Context, token AuthToken) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.UserIDByToken[token]
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return r.UserRepository.GetByID(ctx, userID)
}

func (r *FakeTokenRepository) Delete(ctx context.Context, token AuthToken) (ID, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.UserIDByToken[token]
	if !ok {
		return ID(0), ErrTokenDoesNotExist
	}
	delete(r.UserIDByToken, token)
	delete(r.TokenByUserID, userID)
	return userID, nil
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeAuthTokenGenerator struct {
	Token string
}

func NewFakeAuthTokenGenerator(token string) *FakeAuthTokenGenerator {
	return &FakeAuthTokenGenerator{Token: token}
}

func (g *FakeAuthTokenGenerator) GenerateToken() AuthToken {
	return AuthToken(g.Token)
}

type FakePasswordResetter struct {
	Token   PasswordResetToken
	IsValid bool
}

func NewFakePasswordResetter(token string, isValid bool) *FakePasswordResetter {
	return &FakePasswordResetter{
		Token:   PasswordResetToken(token),
		IsValid: isValid,
	}
}

func (r *FakePasswordResetter) GenerateToken(user User) PasswordResetToken {
	return r.Token
}

func (r *FakePasswordResetter) ValidateToken(user User, token PasswordResetToken) bool {
	return r.IsValid
}

type FakePasswordResetTokenSender struct {
	Sent        []PasswordResetToken
	SentTo      []User
	Subjects    []string
	ReturnError error
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendToken(
	ctx context.Context,
	u User,
	token PasswordResetToken,
	subject string,
) error {
	if s.ReturnError != nil {
		return s.ReturnError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, u)
	s.Subjects = append(s.Subjects, subject)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

package updateuser

import (
	"context"
	c "userauth/internal/core/domain/common"
	e "userauth/internal/core/domain/errors"
	"userauth/internal/core/domain/logging"
	"userauth/internal/core/domain/user"
	"userauth/internal/core/services"
	"userauth/internal/core/services/auth"
)

// Partial update: only fields flagged with Do*Update overwrite stored values.
type Input struct {
	UserID            user.ID
	DoFirstNameUpdate bool
	FirstName         string
	DoLastNameUpdate  bool
	LastName          string
	DoEmailUpdate     bool
	Email             c.Email
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	updatedUser, err := s.userRepository.Update(
		ctx,
		user.UpdateUserInput{
			ID:                input.UserID,
			DoFirstNameUpdate: input.DoFirstNameUpdate,
			FirstName:         input.FirstName,
			DoLastNameUpdate:  input.DoLastNameUpdate,
			LastName:          input.LastName,
			DoEmailUpdate:     input.DoEmailUpdate,
			Email:             input.Email,
		},
	)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
		return result, err
	}

	s.log.Info(
		ctx,
		"User profile successfully updated.",
		logging.Entry("userID", updatedUser.ID),
	)
	result.User = updatedUser
	return result, nil
}

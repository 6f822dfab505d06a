package authtoken

import (
	"userauth/internal/core/domain/user"

	"github.com/google/uuid"
)

type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateToken() user.AuthToken {
	return user.AuthToken(uuid.New().String())
}

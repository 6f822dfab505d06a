package response

import (
	"time"
	"userauth/internal/core/domain/user"
)

type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	IsAdmin   bool       `json:"is_admin"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Username = string(du.Username)
	u.Email = string(du.Email)
	u.FirstName = du.FirstName
	u.LastName = du.LastName
	u.IsAdmin = du.IsAdmin
	u.CreatedAt = du.CreatedAt
	if du.LastLoginAt.IsPresent {
		lastLogin := du.LastLoginAt.Value
		u.LastLogin = &lastLogin
	}
}

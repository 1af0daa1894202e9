package user

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // HR admin - manages contracts and requests
	RoleEmployee Role = "EMPLOYEE" // Regular employee
)

type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if user can manage contracts and process requests
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

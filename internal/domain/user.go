package domain

import "time"

// UserRole represents the role of a user account
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleClient UserRole = "client"
)

// User represents a user account
type User struct {
	ID           int64
	Name         string
	Email        string // unique
	PasswordHash string
	Role         UserRole
	IsActive     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true if the user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

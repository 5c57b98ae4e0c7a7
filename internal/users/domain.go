package users

import "time"

// User represents an operator account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	DisplayName  string
	RoleLabel    string
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

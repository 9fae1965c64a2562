package domain

import "time"

// Role is the single axis of authorization.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the declared values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the domain model for registered accounts. PasswordHash is never
// serialized on any read path.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

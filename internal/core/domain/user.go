package domain

import (
	"errors"
	"time"
)

// Role is the global access level carried by a user account and embedded in
// every issued token.
type Role string

const (
	RoleUser   Role = "USER"
	RoleAuthor Role = "AUTHOR"
	RoleAdmin  Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}

var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username already taken")
var ErrEmailTaken = errors.New("email already taken")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models a registered account. Username and email are unique across all
// records; the password is only ever held as a bcrypt hash.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated actor for a single request. It is built by
// the identity middleware from a verified token and discarded with the
// request; it is never persisted or shared between requests.
type Identity struct {
	UserID   string
	Username string
	Role     Role
}

// IsZero reports whether no identity was resolved for the request.
func (i Identity) IsZero() bool {
	return i.UserID == ""
}

// CanModify is the ownership gate for mutating operations on user-owned
// resources: admins may touch anything, everyone else only their own.
func (i Identity) CanModify(ownerID string) bool {
	return i.Role == RoleAdmin || (i.UserID != "" && i.UserID == ownerID)
}

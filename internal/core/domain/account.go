package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
	RoleUser  = "user"
)

// Account models a registered user of the system. PasswordHash is never
// serialized; the plaintext password only exists inside a single request.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// AccountUpdate carries the fields of a partial update. Nil means "leave
// unchanged"; Password is the plaintext and is hashed before persistence.
type AccountUpdate struct {
	Email    *string
	Name     *string
	Password *string
	Role     *string
}

// Empty reports whether no field was supplied at all.
func (u AccountUpdate) Empty() bool {
	return u.Email == nil && u.Name == nil && u.Password == nil && u.Role == nil
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	// ErrUnknownEmail and ErrInvalidCredentials carry the same ambiguous
	// message so login responses never confirm whether an email is
	// registered, even though the status codes differ.
	ErrUnknownEmail       = errors.New("email or password incorrect")
	ErrInvalidCredentials = errors.New("email or password incorrect")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrNoFields           = errors.New("no fields to update")
)

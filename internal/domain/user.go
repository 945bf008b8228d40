// Package domain contains the tracker entities, just meta-data and the
// invariants that belong to them. No transport or storage logic here.
package domain

import (
	"errors"
	"time"
)

const MaxNameLen = 64

var (
	ErrNameEmpty   = errors.New("name empty")
	ErrNameTooLong = errors.New("name too long")
	ErrInvalidRole = errors.New("invalid role")

	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUserName  = errors.New("user with this name already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserID string

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// User carries the stored password hash, never the plaintext secret.
// The `json:"-"` tag keeps the hash out of every response.
type User struct {
	ID           UserID    `json:"id"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in adapters.
// The store assigns the ID and timestamps.
func NewUser(name string, role Role, passwordHash string) (*User, error) {
	if len(name) == 0 {
		return nil, ErrNameEmpty
	}
	if len(name) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	return &User{Name: name, Role: role, PasswordHash: passwordHash}, nil
}

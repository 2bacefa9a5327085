// Package operation
package operation

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound user does not exist
	ErrUserNotFound = errors.New("user does not exist")
	// ErrEmailTaken a user with this email already exists
	ErrEmailTaken = errors.New("user email has been used")
	// ErrUsernameTaken another active user already claimed this username
	ErrUsernameTaken = errors.New("username has been used")
	// ErrPasswordEncode password hashing failed
	ErrPasswordEncode = errors.New("password encode error")
)

// UserOperationInterface is the single owner of User mutations.
type UserOperationInterface interface {
	// GetUserByUid fetches a user by primary id, when err is nil the user is valid
	GetUserByUid(uid uint) (user *User, err error)
	// GetUserByEmail fetches a user by email, when err is nil the user is valid
	GetUserByEmail(email string) (user *User, err error)
	// GetUserByUsername fetches a user by username, when err is nil the user is valid
	GetUserByUsername(username string) (user *User, err error)
	// GetUserByToken fetches a user by a pending invitation token
	GetUserByToken(token string) (user *User, err error)
	// CreatePendingUser persists a password-less user with an activation token pair.
	// An existing email fails with ErrEmailTaken.
	CreatePendingUser(email, token string, expiry time.Time) (user *User, err error)
	// RenewActivationToken re-issues the token pair on a pending user
	RenewActivationToken(user *User, token string, expiry time.Time) error
	// ActivateUser atomically sets username and password hash, clears the token
	// pair and marks the user active. A claimed username fails with ErrUsernameTaken.
	ActivateUser(user *User, username string, password string) error
	// VerifyUserPassword reports whether password matches the stored bcrypt hash
	VerifyUserPassword(user *User, password string) (pass bool)
}

package auth

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when an insert violates the unique email
// index, e.g. when two registrations race past the service-level pre-check.
var ErrDuplicateEmail = errors.New("email already exists")

// UserRepository provides operations on the users table.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, limit int) ([]User, error)
	CountAll(ctx context.Context) (int, error)
}

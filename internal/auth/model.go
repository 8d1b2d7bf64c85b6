package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleAgent  Role = "AGENT"
	RoleClient Role = "CLIENT"
)

// ParseRole maps a string onto the Role enum, case-insensitively.
// Anything outside the enum is an error so invalid roles are caught
// at the earliest parse point instead of propagating as free-form strings.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleAgent:
		return RoleAgent, nil
	case RoleClient:
		return RoleClient, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User represents a row in the users table. Email is stored normalized
// (trimmed, lowercased) and is unique across all rows.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity is the per-request authenticated principal, stored in the
// request context after a bearer token has been verified.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

// Result is returned by Register and Login: a signed bearer token plus
// the user it was issued for. The password hash is never serialized.
type Result struct {
	Token string
	User  *User
}

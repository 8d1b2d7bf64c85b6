package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const minPasswordLength = 8

// DefaultListLimit bounds the users listing when the caller does not ask
// for a specific page size.
const DefaultListLimit = 50

// Service provides registration, login and the protected user listing.
type Service struct {
	repo   UserRepository
	hasher *Hasher
	tokens *Tokens
}

// NewService creates a new auth Service.
func NewService(repo UserRepository, hasher *Hasher, tokens *Tokens) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// normalizeEmail applies the canonical email form used everywhere: trimmed
// and lowercased. Registration and login must agree on this or lookups
// would silently miss.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the input, creates a credential record and returns a
// signed token for the new user. The duplicate-email pre-check gives a clean
// CONFLICT before hashing; a concurrent registration that slips past it is
// caught again at the unique index and mapped to the same kind.
func (s *Service) Register(ctx context.Context, email, password, role string) (*Result, error) {
	email = normalizeEmail(email)
	if !strings.Contains(email, "@") {
		return nil, badInput("invalid email")
	}
	if len(password) < minPasswordLength {
		return nil, badInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	if role == "" {
		role = string(RoleClient)
	}
	parsedRole, err := ParseRole(role)
	if err != nil {
		return nil, badInput("invalid role")
	}

	_, err = s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, conflict("email already in use")
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("checking existing email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:        email,
		PasswordHash: hash,
		Role:         parsedRole,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, conflict("email already in use")
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &Result{Token: token, User: user}, nil
}

// Login verifies the credentials and returns a signed token. Both failure
// paths are UNAUTHENTICATED; the messages differ only internally.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	email = normalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			slog.Debug("login failed: email not found", "email", email)
			return nil, unauthenticated("invalid credentials: email not found")
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		slog.Debug("login failed: password mismatch", "userId", user.ID)
		return nil, unauthenticated("invalid credentials: password does not match")
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &Result{Token: token, User: user}, nil
}

// ListUsers returns up to limit users, most recent first. Only admins may
// list users; the authentication check takes precedence over the role check.
func (s *Service) ListUsers(ctx context.Context, identity *Identity, limit int) ([]User, error) {
	if err := RequireRole(identity, RoleAdmin); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultListLimit
	}

	return s.repo.List(ctx, limit)
}

// BootstrapAdmin creates the initial admin account if the users table is
// empty. Returns true when an account was created. If users already exist
// this is a no-op, so repeated startups are safe.
func (s *Service) BootstrapAdmin(ctx context.Context, email, password string) (bool, error) {
	count, err := s.repo.CountAll(ctx)
	if err != nil {
		return false, fmt.Errorf("counting users: %w", err)
	}

	if count > 0 {
		return false, nil
	}

	result, err := s.Register(ctx, email, password, string(RoleAdmin))
	if err != nil {
		return false, fmt.Errorf("creating bootstrap admin: %w", err)
	}

	slog.Info("bootstrap admin created", "userId", result.User.ID, "email", result.User.Email)

	return true, nil
}

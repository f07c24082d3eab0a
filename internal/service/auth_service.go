package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookstore/internal/models"
	"bookstore/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows. Unknown-user and wrong-password both map to
// ErrInvalidCredentials so login failures don't reveal which usernames exist.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUnknownPrincipal   = errors.New("unknown principal")
)

// AuthService verifies credentials against the user store and manages
// account creation. It never issues tokens itself; see TokenCodec.
type AuthService struct {
	users repository.Users
}

func NewAuthService(users repository.Users) *AuthService {
	return &AuthService{users: users}
}

var _ Authorization = (*AuthService)(nil)

// Register hashes the password and creates a regular USER account.
func (s *AuthService) Register(ctx context.Context, username, password string) (int, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, errors.New("username is empty")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrUsernameTaken
	}
	return s.users.Create(ctx, username, hash, models.RoleUser)
}

// Login verifies the username/password pair and returns the principal.
// Both "no such user" and "wrong password" yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// LookupPrincipal resolves a token subject to a stored user. A subject that
// no longer resolves fails authentication.
func (s *AuthService) LookupPrincipal(ctx context.Context, username string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnknownPrincipal
	}
	return u, nil
}

// EnsureUser creates username with the given role if it doesn't exist yet.
// Used by startup seeding.
func (s *AuthService) EnsureUser(ctx context.Context, username, password string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.users.Create(ctx, username, hash, role)
	return err
}

func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

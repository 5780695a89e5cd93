// Package auth handles staff credential verification and session management.
//
// Passwords are stored as bcrypt hashes only. The legacy service compared
// plain text; nothing of that survives here.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/openshelf/circulation/internal/database/users"
	"github.com/openshelf/circulation/internal/entities"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password; callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the slice of the users repository the auth service needs.
type UserStore interface {
	CreateUser(username, passwordHash string, role entities.UserRole) (*entities.User, error)
	GetUserByUsername(username string) (*entities.User, error)
}

// Service verifies credentials and creates accounts.
type Service struct {
	store UserStore
	cost  int
}

// NewService creates an authentication service using the given bcrypt cost.
func NewService(store UserStore, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{store: store, cost: bcryptCost}
}

// dummyHash is compared against when the username does not exist, so a
// failed lookup takes as long as a failed password check.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("circulation-dummy"), bcrypt.MinCost)

// Authenticate validates a username/password pair and returns the account.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// CreateUser hashes the password and stores the account. The role is free
// form, matching the legacy schema.
func (s *Service) CreateUser(username, password string, role entities.UserRole) (*entities.User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(username, hash, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

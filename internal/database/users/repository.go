// Package users provides database operations for staff accounts.
package users

import (
	"errors"

	"gorm.io/gorm"

	"github.com/openshelf/circulation/internal/entities"
)

// ErrUserNotFound is returned when no account matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// Repository handles all staff account database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts an account with an already-hashed password. Usernames
// are not unique at this layer; the legacy schema never enforced it.
func (r *Repository) CreateUser(username, passwordHash string, role entities.UserRole) (*entities.User, error) {
	user := &entities.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves the first account matching the username.
func (r *Repository) GetUserByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserListing is what account listings expose; the password hash stays out.
type UserListing struct {
	ID       uint              `json:"id"`
	Username string            `json:"username"`
	Role     entities.UserRole `json:"role"`
}

// ListUsers returns all accounts without password material.
func (r *Repository) ListUsers() ([]UserListing, error) {
	var listings []UserListing
	err := r.db.Model(&entities.User{}).
		Select("id", "username", "role").
		Find(&listings).Error
	return listings, err
}

// DeleteUser removes an account by id. Deleting an absent id is a no-op, as
// it was in the legacy endpoint.
func (r *Repository) DeleteUser(id uint) error {
	return r.db.Delete(&entities.User{}, id).Error
}

// CountUsers reports how many accounts exist; used by the bootstrap command.
func (r *Repository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Count(&count).Error
	return count, err
}

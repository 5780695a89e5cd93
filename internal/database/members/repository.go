// Package members provides database operations for member registration.
package members

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/openshelf/circulation/internal/entities"
)

// ErrDuplicateEmail is returned when the email is already registered. It is a
// recoverable outcome mapped to a user-facing message, not a store failure.
var ErrDuplicateEmail = errors.New("email already exists")

// Repository handles all member database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new members repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddMember registers a new member. Email uniqueness is enforced by the
// store's unique index; a violation surfaces as ErrDuplicateEmail.
func (r *Repository) AddMember(name, email, phone string) (*entities.Member, error) {
	member := &entities.Member{
		Name:  name,
		Email: email,
		Phone: phone,
	}
	if err := r.db.Create(member).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return member, nil
}

// ListMembers returns all registered members.
func (r *Repository) ListMembers() ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.Find(&members).Error
	return members, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// Package books provides database operations for the catalog.
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/openshelf/circulation/internal/entities"
)

// ErrBookNotFound is returned when a book id does not exist in the catalog.
var ErrBookNotFound = errors.New("book not found")

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddBook inserts a new catalog entry. A new book starts with every copy on
// the shelf, so available stock equals total stock.
func (r *Repository) AddBook(title, author, category string, stock int) (*entities.Book, error) {
	book := &entities.Book{
		Title:          title,
		Author:         author,
		Category:       category,
		TotalStock:     stock,
		AvailableStock: stock,
	}
	if err := r.db.Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBook overwrites title, author and category, and sets available_stock
// to the given value. total_stock is intentionally left untouched; that is
// how the legacy endpoint behaved and callers depend on it.
func (r *Repository) UpdateBook(id uint, title, author, category string, stock int) error {
	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(map[string]any{
		"title":           title,
		"author":          author,
		"category":        category,
		"available_stock": stock,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// ListBooks returns the full catalog, unfiltered.
func (r *Repository) ListBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Find(&books).Error
	return books, err
}

// GetBookByID retrieves one book.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Availability is the stock summary shown at the circulation desk.
type Availability struct {
	Title          string `json:"title"`
	AvailableStock int    `json:"available_stock"`
	TotalStock     int    `json:"total_stock"`
}

// CheckAvailability returns the stock counts for one book.
func (r *Repository) CheckAvailability(id uint) (*Availability, error) {
	book, err := r.GetBookByID(id)
	if err != nil {
		return nil, err
	}
	return &Availability{
		Title:          book.Title,
		AvailableStock: book.AvailableStock,
		TotalStock:     book.TotalStock,
	}, nil
}

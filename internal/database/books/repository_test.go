package books

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openshelf/circulation/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_AddBook(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.AddBook("Dune", "Frank Herbert", "Fiction", 3)

	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, 3, book.TotalStock)
	assert.Equal(t, 3, book.AvailableStock)
}

func TestRepository_AddBook_EmptyAuthor(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Author is optional on the add form.
	book, err := repo.AddBook("Beowulf", "", "Poetry", 1)

	require.NoError(t, err)
	assert.Empty(t, book.Author)
}

func TestRepository_UpdateBook(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.AddBook("Dune", "Frank Herbert", "Fiction", 3)
	require.NoError(t, err)

	err = repo.UpdateBook(book.ID, "Dune Messiah", "Frank Herbert", "Fiction", 5)
	require.NoError(t, err)

	updated, err := repo.GetBookByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Equal(t, 5, updated.AvailableStock)
	// total_stock is deliberately never rebased by an update.
	assert.Equal(t, 3, updated.TotalStock)
}

func TestRepository_UpdateBook_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.UpdateBook(999, "Ghost", "", "Fiction", 1)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestRepository_ListBooks(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.AddBook("Dune", "Frank Herbert", "Fiction", 3)
	require.NoError(t, err)
	_, err = repo.AddBook("Hyperion", "Dan Simmons", "Fiction", 2)
	require.NoError(t, err)

	all, err := repo.ListBooks()

	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_CheckAvailability(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.AddBook("Dune", "Frank Herbert", "Fiction", 3)
	require.NoError(t, err)

	availability, err := repo.CheckAvailability(book.ID)

	require.NoError(t, err)
	assert.Equal(t, "Dune", availability.Title)
	assert.Equal(t, 3, availability.AvailableStock)
	assert.Equal(t, 3, availability.TotalStock)
}

func TestRepository_CheckAvailability_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.CheckAvailability(999)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

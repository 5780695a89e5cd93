package members

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
	dbPath := "./test_members_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Member{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_AddMember(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	member, err := repo.AddMember("Jane Doe", "jane@example.com", "555-0101")

	require.NoError(t, err)
	assert.NotZero(t, member.ID)
	assert.Equal(t, "jane@example.com", member.Email)
}

func TestRepository_AddMember_DuplicateEmail(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.AddMember("Jane Doe", "jane@example.com", "555-0101")
	require.NoError(t, err)

	_, err = repo.AddMember("Jane Impostor", "jane@example.com", "555-0999")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// The duplicate never creates a second row.
	all, err := repo.ListMembers()
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "Jane Doe", all[0].Name)
}

func TestRepository_ListMembers(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.AddMember("Jane Doe", "jane@example.com", "555-0101")
	require.NoError(t, err)
	_, err = repo.AddMember("John Smith", "john@example.com", "555-0102")
	require.NoError(t, err)

	all, err := repo.ListMembers()

	require.NoError(t, err)
	assert.Len(t, all, 2)
}

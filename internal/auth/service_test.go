package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openshelf/circulation/internal/database/users"
	"github.com/openshelf/circulation/internal/entities"
)

func setupTestService(t *testing.T) (*Service, func()) {
	dbPath := "./test_auth_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{})
	require.NoError(t, err)

	service := NewService(users.NewRepository(db), bcrypt.MinCost)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return service, cleanup
}

func TestService_CreateUser_HashesPassword(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	user, err := service.CreateUser("librarian", "hunter2hunter2", entities.UserRoleStaff)

	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
	assert.NoError(t, CheckPassword("hunter2hunter2", user.PasswordHash))
}

func TestService_CreateUser_FreeFormRole(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	// Roles are free-form strings; the store accepts anything.
	user, err := service.CreateUser("intern", "summer-job", entities.UserRole("volunteer"))

	require.NoError(t, err)
	assert.Equal(t, entities.UserRole("volunteer"), user.Role)
}

func TestService_Authenticate(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("librarian", "hunter2hunter2", entities.UserRoleStaff)
	require.NoError(t, err)

	user, err := service.Authenticate("librarian", "hunter2hunter2")

	require.NoError(t, err)
	assert.Equal(t, "librarian", user.Username)
	assert.Equal(t, entities.UserRoleStaff, user.Role)
}

func TestService_Authenticate_GenericFailure(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("librarian", "hunter2hunter2", entities.UserRoleStaff)
	require.NoError(t, err)

	// Wrong password and unknown username fail identically.
	_, wrongPassword := service.Authenticate("librarian", "wrong")
	_, unknownUser := service.Authenticate("nobody", "hunter2hunter2")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
}

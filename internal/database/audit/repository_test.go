package audit

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openshelf/circulation/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_audit_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_LogEvent(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventIssue,
		Description: "issued book 1 to Jane Doe",
		Status:      entities.AuditStatusSuccess,
	}
	require.NoError(t, repo.LogEvent(event))
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			EventType: entities.AuditEventReturn,
			Status:    entities.AuditStatusSuccess,
		}))
	}

	events, total, err := repo.GetEvents(2, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, events, 2)
}

func TestRepository_HasNoticeForLoan(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	loanID := uint(7)
	seen, err := repo.HasNoticeForLoan(loanID)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventType: entities.AuditEventOverdueNotice,
		LoanID:    &loanID,
		Status:    entities.AuditStatusSuccess,
	}))

	seen, err = repo.HasNoticeForLoan(loanID)
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	old := &entities.AuditEvent{
		EventType: entities.AuditEventAuth,
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, repo.LogEvent(old))
	recent := &entities.AuditEvent{
		EventType: entities.AuditEventAuth,
		Status:    entities.AuditStatusSuccess,
	}
	require.NoError(t, repo.LogEvent(recent))

	deleted, err := repo.DeleteOldEvents(24 * time.Hour)

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := repo.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

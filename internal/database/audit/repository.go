// Package audit persists the circulation audit trail.
package audit

import (
	"time"

	"gorm.io/gorm"

	"github.com/openshelf/circulation/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.Create(event).Error
}

// GetEvents retrieves paginated audit events, most recent first.
func (r *Repository) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	var events []entities.AuditEvent
	var total int64

	if err := r.db.Model(&entities.AuditEvent{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := r.db.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&events).Error
	return events, total, err
}

// HasNoticeForLoan reports whether an overdue notice was already recorded for
// the loan; the scan uses it to avoid sending duplicates.
func (r *Repository) HasNoticeForLoan(loanID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.AuditEvent{}).
		Where("event_type = ? AND loan_id = ?", entities.AuditEventOverdueNotice, loanID).
		Count(&count).Error
	return count > 0, err
}

// DeleteOldEvents removes audit events older than the retention period and
// returns how many were deleted.
func (r *Repository) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}

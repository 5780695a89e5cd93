package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/openshelf/circulation/internal/entities"
)

// OverdueLoanSource lists open loans already past their due date.
type OverdueLoanSource interface {
	OverdueLoans() ([]entities.Loan, error)
}

// NoticeRecorder persists overdue notices to the audit trail.
type NoticeRecorder interface {
	LogEvent(event *entities.AuditEvent) error
	HasNoticeForLoan(loanID uint) (bool, error)
}

// OverdueScanTask walks the open loans and records one overdue notice per
// loan that crossed its due date since the last scan.
type OverdueScanTask struct{}

// Config returns the queue configuration for overdue scans.
func (t OverdueScanTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "overdue_scan",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// OverdueScanProcessor creates a processor function for OverdueScanTask.
func OverdueScanProcessor(loans OverdueLoanSource, recorder NoticeRecorder) backlite.QueueProcessor[OverdueScanTask] {
	return func(ctx context.Context, task OverdueScanTask) error {
		if loans == nil || recorder == nil {
			return fmt.Errorf("overdue scan dependencies not configured")
		}

		overdue, err := loans.OverdueLoans()
		if err != nil {
			return fmt.Errorf("list overdue loans: %w", err)
		}

		var recorded int
		for _, loan := range overdue {
			seen, err := recorder.HasNoticeForLoan(loan.ID)
			if err != nil {
				return fmt.Errorf("check existing notice: %w", err)
			}
			if seen {
				continue
			}

			loanID := loan.ID
			bookID := loan.BookID
			event := &entities.AuditEvent{
				EventType:   entities.AuditEventOverdueNotice,
				Description: fmt.Sprintf("loan %d for %s overdue since %s", loan.ID, loan.MemberName, loan.DueDate.Format(time.DateOnly)),
				BookID:      &bookID,
				LoanID:      &loanID,
				Status:      entities.AuditStatusSuccess,
			}
			if err := recorder.LogEvent(event); err != nil {
				return fmt.Errorf("record overdue notice: %w", err)
			}
			recorded++
		}

		log.Printf("[TASK] Overdue scan: %d open loans overdue, %d new notices", len(overdue), recorded)
		return nil
	}
}

// NewOverdueScanQueue creates a backlite queue for overdue scans.
func NewOverdueScanQueue(loans OverdueLoanSource, recorder NoticeRecorder) backlite.Queue {
	return backlite.NewQueue(OverdueScanProcessor(loans, recorder))
}

// Package loans implements the circulation state machine over the
// transactions table.
//
// A loan has two states: open (return_date IS NULL) and closed. Issue creates
// an open loan and takes a copy off the shelf; Return closes the loan, fixes
// the fine, and puts the copy back. Both transitions run inside a single
// database transaction so the stock count and the open-loan count can never
// drift apart, even under concurrent requests.
package loans

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/openshelf/circulation/internal/entities"
)

var (
	// ErrBookNotFound is returned when the book id does not exist.
	ErrBookNotFound = errors.New("book not found")
	// ErrBookUnavailable is returned when every copy is already out.
	ErrBookUnavailable = errors.New("book not available")
	// ErrNoActiveLoan is returned when no open loan matches (book, member).
	ErrNoActiveLoan = errors.New("no active loan record found")
)

// Repository handles all circulation database operations.
type Repository struct {
	db         *gorm.DB
	finePerDay float64
	now        func() time.Time
}

// NewRepository creates a circulation repository charging perDay per day
// late. A non-positive rate falls back to the default.
func NewRepository(db *gorm.DB, perDay float64) *Repository {
	if perDay <= 0 {
		perDay = DefaultFinePerDay
	}
	return &Repository{
		db:         db,
		finePerDay: perDay,
		now:        time.Now,
	}
}

// IssueBook lends one copy of a book to a member.
//
// The availability check and the stock decrement are a single conditional
// update: the decrement only matches rows with available_stock > 0, and a
// zero rows-affected result means every copy is out. Together with the
// surrounding transaction this makes check-and-decrement indivisible, so two
// concurrent issues of the last copy cannot both succeed.
func (r *Repository) IssueBook(bookID uint, memberName string, dueDate time.Time) (*entities.Loan, error) {
	loan := &entities.Loan{
		BookID:     bookID,
		MemberName: memberName,
		DueDate:    dateOnly(dueDate),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Book{}).
			Where("id = ? AND available_stock > 0", bookID).
			UpdateColumn("available_stock", gorm.Expr("available_stock - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Distinguish a missing book from an out-of-stock one.
			var count int64
			if err := tx.Model(&entities.Book{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrBookNotFound
			}
			return ErrBookUnavailable
		}

		return tx.Create(loan).Error
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// ReturnBook closes the open loan for (book, member), fixes the fine, and
// puts the copy back on the shelf.
//
// Member names are matched exactly. When several open loans exist for the
// same pair, the one due soonest is closed first, with insertion order as
// the tie-break; the legacy service left this to unspecified store ordering.
func (r *Repository) ReturnBook(bookID uint, memberName string) (*entities.Loan, error) {
	var loan entities.Loan

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("book_id = ? AND user_name = ? AND return_date IS NULL", bookID, memberName).
			Order("due_date ASC, id ASC").
			First(&loan).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveLoan
		}
		if err != nil {
			return err
		}

		today := dateOnly(r.now())
		fine := fineFor(loan.DueDate, today, r.finePerDay)

		result := tx.Model(&entities.Loan{}).Where("id = ?", loan.ID).Updates(map[string]any{
			"return_date": today,
			"fine_amount": fine,
		})
		if result.Error != nil {
			return result.Error
		}
		loan.ReturnDate = &today
		loan.FineAmount = &fine

		return tx.Model(&entities.Book{}).
			Where("id = ?", bookID).
			UpdateColumn("available_stock", gorm.Expr("available_stock + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// ActiveIssue is one row of the open-loans report.
type ActiveIssue struct {
	ID         uint   `json:"id"`
	MemberName string `json:"user_name"`
	BookID     uint   `json:"book_id"`
	Title      string `json:"title"`
	DueDate    string `json:"due_date"`
}

// OverdueReturn is one row of the overdue report.
type OverdueReturn struct {
	ID         uint   `json:"id"`
	MemberName string `json:"user_name"`
	Title      string `json:"title"`
	DueDate    string `json:"due_date"`
}

type reportRow struct {
	ID         uint
	MemberName string
	BookID     uint
	Title      string
	DueDate    time.Time
}

// ActiveIssues lists every open loan joined with its book title.
func (r *Repository) ActiveIssues() ([]ActiveIssue, error) {
	rows, err := r.openLoanRows(nil)
	if err != nil {
		return nil, err
	}
	issues := make([]ActiveIssue, 0, len(rows))
	for _, row := range rows {
		issues = append(issues, ActiveIssue{
			ID:         row.ID,
			MemberName: row.MemberName,
			BookID:     row.BookID,
			Title:      row.Title,
			DueDate:    row.DueDate.Format(time.DateOnly),
		})
	}
	return issues, nil
}

// OverdueReturns lists open loans whose due date is strictly before today.
func (r *Repository) OverdueReturns() ([]OverdueReturn, error) {
	today := dateOnly(r.now())
	rows, err := r.openLoanRows(&today)
	if err != nil {
		return nil, err
	}
	overdue := make([]OverdueReturn, 0, len(rows))
	for _, row := range rows {
		overdue = append(overdue, OverdueReturn{
			ID:         row.ID,
			MemberName: row.MemberName,
			Title:      row.Title,
			DueDate:    row.DueDate.Format(time.DateOnly),
		})
	}
	return overdue, nil
}

// OverdueLoans returns the raw open loans past due as of today; used by the
// overdue notice scan.
func (r *Repository) OverdueLoans() ([]entities.Loan, error) {
	var loans []entities.Loan
	today := dateOnly(r.now())
	err := r.db.Where("return_date IS NULL AND due_date < ?", today).Find(&loans).Error
	return loans, err
}

func (r *Repository) openLoanRows(dueBefore *time.Time) ([]reportRow, error) {
	var rows []reportRow
	query := r.db.Table("transactions t").
		Select("t.id AS id, t.user_name AS member_name, t.book_id AS book_id, b.title AS title, t.due_date AS due_date").
		Joins("JOIN books b ON t.book_id = b.id").
		Where("t.return_date IS NULL")
	if dueBefore != nil {
		query = query.Where("t.due_date < ?", *dueBefore)
	}
	err := query.Order("t.due_date ASC, t.id ASC").Scan(&rows).Error
	return rows, err
}

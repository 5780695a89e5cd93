package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/circulation/internal/auth"
	"github.com/openshelf/circulation/internal/database/audit"
	"github.com/openshelf/circulation/internal/database/loans"
	"github.com/openshelf/circulation/internal/entities"
)

// CirculationController handles the issue/return desk endpoints.
type CirculationController struct {
	repo     *loans.Repository
	auditor  *audit.Repository
	sessions *auth.SessionManager
}

// NewCirculationController creates a new CirculationController.
func NewCirculationController(repo *loans.Repository, auditor *audit.Repository, sessions *auth.SessionManager) *CirculationController {
	return &CirculationController{repo: repo, auditor: auditor, sessions: sessions}
}

type issueBookRequest struct {
	BookID     uint   `json:"bookId"`
	MemberName string `json:"memberName"`
	DueDate    string `json:"dueDate"` // YYYY-MM-DD
}

// IssueBook lends a copy to a member. The availability check and the stock
// decrement commit atomically with the loan insert.
func (cc *CirculationController) IssueBook(c *gin.Context) {
	var req issueBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	dueDate, err := time.ParseInLocation(time.DateOnly, req.DueDate, time.Local)
	if err != nil {
		respondBadRequest(c, "dueDate must be in YYYY-MM-DD format")
		return
	}

	loan, err := cc.repo.IssueBook(req.BookID, req.MemberName, dueDate)
	switch {
	case errors.Is(err, loans.ErrBookNotFound):
		respondFailure(c, "Book not found")
		return
	case errors.Is(err, loans.ErrBookUnavailable):
		respondFailure(c, "Book not available")
		return
	case err != nil:
		respondStoreFailure(c, err, "issue book")
		return
	}

	recordAudit(cc.auditor, &entities.AuditEvent{
		EventType:   entities.AuditEventIssue,
		Description: fmt.Sprintf("issued book %d to %s, due %s", loan.BookID, loan.MemberName, loan.DueDate.Format(time.DateOnly)),
		BookID:      &loan.BookID,
		LoanID:      &loan.ID,
		Actor:       actor(cc.sessions, c),
		Status:      entities.AuditStatusSuccess,
	})
	respondSuccess(c, "Book issued successfully")
}

type returnBookRequest struct {
	BookID     uint   `json:"bookId"`
	MemberName string `json:"memberName"`
}

type returnBookResponse struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	FineAmount float64 `json:"fineAmount"`
}

// ReturnBook closes the member's open loan for the book and reports the fine
// fixed at return time.
func (cc *CirculationController) ReturnBook(c *gin.Context) {
	var req returnBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	loan, err := cc.repo.ReturnBook(req.BookID, req.MemberName)
	if errors.Is(err, loans.ErrNoActiveLoan) {
		respondFailure(c, "No active record found. Is the Book ID correct?")
		return
	}
	if err != nil {
		respondStoreFailure(c, err, "return book")
		return
	}

	recordAudit(cc.auditor, &entities.AuditEvent{
		EventType:   entities.AuditEventReturn,
		Description: fmt.Sprintf("returned book %d from %s, fine %.2f", loan.BookID, loan.MemberName, *loan.FineAmount),
		BookID:      &loan.BookID,
		LoanID:      &loan.ID,
		Actor:       actor(cc.sessions, c),
		Status:      entities.AuditStatusSuccess,
	})

	c.JSON(http.StatusOK, returnBookResponse{
		Success:    true,
		Message:    "Book Returned Successfully",
		FineAmount: *loan.FineAmount,
	})
}

// ActiveIssues lists every open loan with its book title.
func (cc *CirculationController) ActiveIssues(c *gin.Context) {
	issues, err := cc.repo.ActiveIssues()
	if err != nil {
		respondStoreFailure(c, err, "active issues")
		return
	}
	c.JSON(http.StatusOK, issues)
}

// OverdueReturns lists open loans already past their due date.
func (cc *CirculationController) OverdueReturns(c *gin.Context) {
	overdue, err := cc.repo.OverdueReturns()
	if err != nil {
		respondStoreFailure(c, err, "overdue returns")
		return
	}
	c.JSON(http.StatusOK, overdue)
}

package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/circulation/internal/database/audit"
	"github.com/openshelf/circulation/internal/database/books"
	"github.com/openshelf/circulation/internal/entities"
)

// CatalogController handles the book catalog endpoints.
type CatalogController struct {
	repo    *books.Repository
	auditor *audit.Repository
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(repo *books.Repository, auditor *audit.Repository) *CatalogController {
	return &CatalogController{repo: repo, auditor: auditor}
}

// ListBooks returns the full catalog as a bare array.
func (cc *CatalogController) ListBooks(c *gin.Context) {
	all, err := cc.repo.ListBooks()
	if err != nil {
		respondStoreFailure(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, all)
}

type addBookRequest struct {
	Title    string `json:"title"`
	Author   string `json:"author"` // optional
	Category string `json:"category"`
	Stock    int    `json:"stock"`
}

// AddBook inserts a catalog entry with all copies on the shelf.
func (cc *CatalogController) AddBook(c *gin.Context) {
	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := cc.repo.AddBook(req.Title, req.Author, req.Category, req.Stock)
	if err != nil {
		respondStoreFailure(c, err, "add book")
		return
	}

	recordAudit(cc.auditor, &entities.AuditEvent{
		EventType:   entities.AuditEventCatalog,
		Description: fmt.Sprintf("added book %q", book.Title),
		BookID:      &book.ID,
		Status:      entities.AuditStatusSuccess,
	})
	respondSuccess(c, "Book added successfully")
}

type updateBookRequest struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
}

// UpdateBook overwrites a catalog entry. The stock value lands in
// available_stock only; total_stock keeps its old value.
func (cc *CatalogController) UpdateBook(c *gin.Context) {
	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	err := cc.repo.UpdateBook(req.ID, req.Title, req.Author, req.Category, req.Stock)
	if errors.Is(err, books.ErrBookNotFound) {
		respondFailure(c, "Book ID not found")
		return
	}
	if err != nil {
		respondStoreFailure(c, err, "update book")
		return
	}

	recordAudit(cc.auditor, &entities.AuditEvent{
		EventType:   entities.AuditEventCatalog,
		Description: fmt.Sprintf("updated book %d", req.ID),
		BookID:      &req.ID,
		Status:      entities.AuditStatusSuccess,
	})
	respondSuccess(c, "Book updated successfully")
}

type checkAvailabilityRequest struct {
	BookID uint `json:"bookId"`
}

type checkAvailabilityResponse struct {
	Success bool                `json:"success"`
	Book    *books.Availability `json:"book"`
}

// CheckAvailability returns the stock summary for one book.
func (cc *CatalogController) CheckAvailability(c *gin.Context) {
	var req checkAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	availability, err := cc.repo.CheckAvailability(req.BookID)
	if errors.Is(err, books.ErrBookNotFound) {
		respondFailure(c, "Book ID not found")
		return
	}
	if err != nil {
		respondStoreFailure(c, err, "check availability")
		return
	}

	c.JSON(http.StatusOK, checkAvailabilityResponse{Success: true, Book: availability})
}

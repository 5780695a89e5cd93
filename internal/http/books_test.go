package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/circulation/internal/entities"
)

func TestAddBook(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	w := api.request(t, "POST", "/add-book", gin.H{
		"title":    "Dune",
		"author":   "Frank Herbert",
		"category": "Fiction",
		"stock":    3,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Book added successfully", payload["message"])

	all, err := api.books.ListBooks()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 3, all[0].TotalStock)
	assert.Equal(t, 3, all[0].AvailableStock)
}

func TestAddBook_WithoutAuthor(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	w := api.request(t, "POST", "/add-book", gin.H{
		"title":    "Anonymous Pamphlet",
		"category": "History",
		"stock":    1,
	})

	payload := decodeResponse(t, w)
	assert.Equal(t, true, payload["success"])
}

func TestListBooks(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	_, err := api.books.AddBook("Dune", "Frank Herbert", "Fiction", 2)
	require.NoError(t, err)
	_, err = api.books.AddBook("SICP", "Abelson", "Computing", 1)
	require.NoError(t, err)

	w := api.request(t, "GET", "/books", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var all []entities.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func TestUpdateBook(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	book, err := api.books.AddBook("Dun", "Frank Herbert", "Fiction", 5)
	require.NoError(t, err)

	w := api.request(t, "PUT", "/update-book", gin.H{
		"id":       book.ID,
		"title":    "Dune",
		"author":   "Frank Herbert",
		"category": "Fiction",
		"stock":    2,
	})

	payload := decodeResponse(t, w)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Book updated successfully", payload["message"])

	updated, err := api.books.GetBookByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, 2, updated.AvailableStock)
	// The update endpoint never touches total_stock.
	assert.Equal(t, 5, updated.TotalStock)
}

func TestUpdateBook_NotFound(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	w := api.request(t, "PUT", "/update-book", gin.H{
		"id":       42,
		"title":    "Dune",
		"category": "Fiction",
		"stock":    2,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Book ID not found", payload["message"])
}

func TestCheckAvailability(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	book, err := api.books.AddBook("Dune", "Frank Herbert", "Fiction", 4)
	require.NoError(t, err)

	w := api.request(t, "POST", "/check-availability", gin.H{"bookId": book.ID})

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w)
	assert.Equal(t, true, payload["success"])
	details, ok := payload["book"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Dune", details["title"])
	assert.Equal(t, 4.0, details["available_stock"])
	assert.Equal(t, 4.0, details["total_stock"])
}

func TestCheckAvailability_NotFound(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	w := api.request(t, "POST", "/check-availability", gin.H{"bookId": 42})

	payload := decodeResponse(t, w)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Book ID not found", payload["message"])
}

func TestAddBook_MalformedBody(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	// An array body cannot bind into the request struct.
	w := api.request(t, "POST", "/add-book", []string{"not", "a", "book"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/openshelf/circulation/internal/auth"
	"github.com/openshelf/circulation/internal/database"
	"github.com/openshelf/circulation/internal/database/audit"
	"github.com/openshelf/circulation/internal/database/books"
	"github.com/openshelf/circulation/internal/database/loans"
	"github.com/openshelf/circulation/internal/database/members"
	"github.com/openshelf/circulation/internal/database/users"
)

type testAPI struct {
	router *gin.Engine
	db     *database.Database
	books  *books.Repository
	loans  *loans.Repository
	audit  *audit.Repository
}

func setupTestAPI(t *testing.T) (*testAPI, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_api_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	booksRepo := books.NewRepository(db.DB)
	membersRepo := members.NewRepository(db.DB)
	usersRepo := users.NewRepository(db.DB)
	loansRepo := loans.NewRepository(db.DB, loans.DefaultFinePerDay)
	auditRepo := audit.NewRepository(db.DB)
	authService := auth.NewService(usersRepo, bcrypt.MinCost)

	router := NewRouter(RouterConfig{
		Database:    db,
		Books:       booksRepo,
		Members:     membersRepo,
		Users:       usersRepo,
		Loans:       loansRepo,
		Auditor:     auditRepo,
		AuthService: authService,
		Version:     "test",
	})

	api := &testAPI{
		router: router,
		db:     db,
		books:  booksRepo,
		loans:  loansRepo,
		audit:  auditRepo,
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return api, cleanup
}

func (a *testAPI) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

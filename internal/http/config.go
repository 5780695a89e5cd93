package http

import (
	"github.com/openshelf/circulation/internal/auth"
	"github.com/openshelf/circulation/internal/database"
	"github.com/openshelf/circulation/internal/database/audit"
	"github.com/openshelf/circulation/internal/database/books"
	"github.com/openshelf/circulation/internal/database/loans"
	"github.com/openshelf/circulation/internal/database/members"
	"github.com/openshelf/circulation/internal/database/users"
)

// RouterConfig carries every dependency the router wires into controllers.
type RouterConfig struct {
	Database *database.Database

	Books   *books.Repository
	Members *members.Repository
	Users   *users.Repository
	Loans   *loans.Repository
	Auditor *audit.Repository

	AuthService    *auth.Service
	SessionManager *auth.SessionManager

	AllowedOrigins []string
	Version        string
}

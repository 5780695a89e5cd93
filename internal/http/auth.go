package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/circulation/internal/auth"
	"github.com/openshelf/circulation/internal/database/audit"
	"github.com/openshelf/circulation/internal/entities"
)

// AuthController handles staff login and logout.
type AuthController struct {
	authService *auth.Service
	sessions    *auth.SessionManager
	auditor     *audit.Repository
}

// NewAuthController creates a new AuthController. The session manager may be
// nil; login then degrades to a pure credential check, which is all the
// legacy frontend ever used.
func NewAuthController(authService *auth.Service, sessions *auth.SessionManager, auditor *audit.Repository) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		auditor:     auditor,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool              `json:"success"`
	Role    entities.UserRole `json:"role"`
}

// Login verifies credentials and returns the account role. Unknown username
// and wrong password produce the same generic message.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := ac.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			recordAudit(ac.auditor, &entities.AuditEvent{
				EventType:   entities.AuditEventAuth,
				Description: "failed login for " + req.Username,
				Actor:       req.Username,
				Status:      entities.AuditStatusFailed,
			})
			respondFailure(c, "Invalid Credentials")
			return
		}
		respondStoreFailure(c, err, "login")
		return
	}

	if ac.sessions != nil {
		if err := ac.sessions.CreateSession(c.Request, user); err != nil {
			respondStoreFailure(c, err, "create session")
			return
		}
	}

	recordAudit(ac.auditor, &entities.AuditEvent{
		EventType:   entities.AuditEventAuth,
		Description: "successful login for " + user.Username,
		Actor:       user.Username,
		Status:      entities.AuditStatusSuccess,
	})

	c.JSON(http.StatusOK, loginResponse{Success: true, Role: user.Role})
}

// Logout destroys the session, if any.
func (ac *AuthController) Logout(c *gin.Context) {
	if ac.sessions != nil {
		if err := ac.sessions.DestroySession(c.Request); err != nil {
			respondStoreFailure(c, err, "destroy session")
			return
		}
	}
	respondSuccess(c, "Logged out")
}

// actor returns the staff username attached to the request's session, when
// sessions are wired and a login happened.
func actor(sessions *auth.SessionManager, c *gin.Context) string {
	if sessions == nil {
		return ""
	}
	return sessions.SessionUsername(c.Request)
}

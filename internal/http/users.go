package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/circulation/internal/auth"
	"github.com/openshelf/circulation/internal/database/audit"
	"github.com/openshelf/circulation/internal/database/users"
	"github.com/openshelf/circulation/internal/entities"
)

// UsersController handles staff account administration.
type UsersController struct {
	repo        *users.Repository
	authService *auth.Service
	auditor     *audit.Repository
}

// NewUsersController creates a new UsersController.
func NewUsersController(repo *users.Repository, authService *auth.Service, auditor *audit.Repository) *UsersController {
	return &UsersController{repo: repo, authService: authService, auditor: auditor}
}

// ListUsers returns all accounts; password material never appears.
func (uc *UsersController) ListUsers(c *gin.Context) {
	listings, err := uc.repo.ListUsers()
	if err != nil {
		respondStoreFailure(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, listings)
}

type addUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AddUser creates an account. The password is hashed before it touches the
// store; the role is free form.
func (uc *UsersController) AddUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := uc.authService.CreateUser(req.Username, req.Password, entities.UserRole(req.Role))
	if err != nil {
		respondStoreFailure(c, err, "add user")
		return
	}

	recordAudit(uc.auditor, &entities.AuditEvent{
		EventType:   entities.AuditEventUserAdmin,
		Description: fmt.Sprintf("created user %q with role %q", user.Username, user.Role),
		Status:      entities.AuditStatusSuccess,
	})
	respondSuccess(c, "User created successfully")
}

type deleteUserRequest struct {
	ID uint `json:"id"`
}

// DeleteUser removes an account by id.
func (uc *UsersController) DeleteUser(c *gin.Context) {
	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := uc.repo.DeleteUser(req.ID); err != nil {
		respondStoreFailure(c, err, "delete user")
		return
	}

	recordAudit(uc.auditor, &entities.AuditEvent{
		EventType:   entities.AuditEventUserAdmin,
		Description: fmt.Sprintf("deleted user %d", req.ID),
		Status:      entities.AuditStatusSuccess,
	})
	respondSuccess(c, "User deleted successfully")
}

package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/circulation/internal/database/audit"
	"github.com/openshelf/circulation/internal/database/members"
	"github.com/openshelf/circulation/internal/entities"
)

// MembersController handles member registration and listing.
type MembersController struct {
	repo    *members.Repository
	auditor *audit.Repository
}

// NewMembersController creates a new MembersController.
func NewMembersController(repo *members.Repository, auditor *audit.Repository) *MembersController {
	return &MembersController{repo: repo, auditor: auditor}
}

type addMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AddMember registers a member. A duplicate email is a recoverable outcome
// with its own message, not a store failure.
func (mc *MembersController) AddMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	member, err := mc.repo.AddMember(req.Name, req.Email, req.Phone)
	if errors.Is(err, members.ErrDuplicateEmail) {
		respondFailure(c, "Email already exists!")
		return
	}
	if err != nil {
		respondStoreFailure(c, err, "add member")
		return
	}

	recordAudit(mc.auditor, &entities.AuditEvent{
		EventType:   entities.AuditEventMembership,
		Description: fmt.Sprintf("registered member %q", member.Name),
		Status:      entities.AuditStatusSuccess,
	})
	respondSuccess(c, "Member added successfully")
}

// ListMembers returns all members as a bare array.
func (mc *MembersController) ListMembers(c *gin.Context) {
	all, err := mc.repo.ListMembers()
	if err != nil {
		respondStoreFailure(c, err, "list members")
		return
	}
	c.JSON(http.StatusOK, all)
}

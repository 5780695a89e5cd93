package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/circulation/internal/database/audit"
	"github.com/openshelf/circulation/internal/entities"
)

// AuditController exposes the read side of the audit trail.
type AuditController struct {
	repo *audit.Repository
}

// NewAuditController creates a new AuditController.
func NewAuditController(repo *audit.Repository) *AuditController {
	return &AuditController{repo: repo}
}

type auditEventsResponse struct {
	Events []entities.AuditEvent `json:"events"`
	Total  int64                 `json:"total"`
}

// ListEvents returns paginated audit events, most recent first.
func (ac *AuditController) ListEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	events, total, err := ac.repo.GetEvents(limit, offset)
	if err != nil {
		respondStoreFailure(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, auditEventsResponse{Events: events, Total: total})
}

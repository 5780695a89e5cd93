package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/circulation/internal/database/audit"
	"github.com/openshelf/circulation/internal/entities"
)

// Response is the envelope every mutating endpoint answers with. Business
// failures travel inside it with HTTP 200 — the frontend switches on the
// success flag, not on status codes. Only malformed requests get a 4xx.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// respondSuccess sends a success payload with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

// respondFailure sends a recoverable business failure (not found, out of
// stock, duplicate email, ...) as a payload-level error.
func respondFailure(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: false, Message: message})
}

// respondStoreFailure logs the query error and reports a generic failure.
// The underlying error is never exposed to the client.
func respondStoreFailure(c *gin.Context, err error, context string) {
	log.Printf("Store failure (%s): %v", context, err)
	c.JSON(http.StatusOK, Response{Success: false, Message: "database error"})
}

// respondBadRequest rejects a request whose body could not be parsed.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: message})
}

// recordAudit writes an audit event, tolerating a nil repository (audit is
// optional wiring) and never failing the request over it.
func recordAudit(auditor *audit.Repository, event *entities.AuditEvent) {
	if auditor == nil {
		return
	}
	if err := auditor.LogEvent(event); err != nil {
		log.Printf("Failed to record audit event: %v", err)
	}
}

package entities

import "time"

type AuditEventType string

const (
	AuditEventAuth          AuditEventType = "auth"
	AuditEventCatalog       AuditEventType = "catalog"
	AuditEventMembership    AuditEventType = "membership"
	AuditEventUserAdmin     AuditEventType = "user_admin"
	AuditEventIssue         AuditEventType = "issue"
	AuditEventReturn        AuditEventType = "return"
	AuditEventOverdueNotice AuditEventType = "overdue_notice"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records one circulation-desk action for the audit trail.
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Description string         `gorm:"size:500" json:"description"` // e.g. "issued book 4 to Jane Doe"
	BookID      *uint          `gorm:"index" json:"book_id,omitempty"`
	LoanID      *uint          `gorm:"index" json:"loan_id,omitempty"`
	Actor       string         `gorm:"size:100" json:"actor,omitempty"` // staff username, when known
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}

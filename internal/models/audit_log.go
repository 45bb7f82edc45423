package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded by the audit logger.
const (
	AuditActionCreate       = "CREATE"
	AuditActionUpdate       = "UPDATE"
	AuditActionDelete       = "DELETE"
	AuditActionUpdateStatus = "UPDATE_STATUS"
	AuditActionUploadFile   = "UPLOAD_FILE"
	AuditActionDeleteFile   = "DELETE_FILE"
	AuditActionLogin        = "LOGIN"
	AuditActionLoginFailed  = "LOGIN_FAILED"
	AuditActionLogout       = "LOGOUT"
)

// AuditLogEntry is an append-only record of an administrative action.
// Entries are never updated or deleted through the application.
type AuditLogEntry struct {
	ID        uuid.UUID      `json:"id"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  *string        `json:"entity_id,omitempty"`
	UserID    *uuid.UUID     `json:"user_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package audit records administrative actions into the append-only
// audit log. Recording failures never fail the primary operation; they
// are logged and dropped.
package audit

import (
	"log/slog"

	"github.com/google/uuid"

	"therapycms/internal/models"
)

// Recorder persists audit entries. *store.AuditStore satisfies it.
type Recorder interface {
	Insert(e *models.AuditLogEntry) error
}

// Logger writes audit entries through a Recorder.
type Logger struct {
	recorder Recorder
}

// NewLogger creates an audit Logger backed by the given recorder.
func NewLogger(recorder Recorder) *Logger {
	return &Logger{recorder: recorder}
}

// Record writes one audit entry. Errors are swallowed after logging so a
// failed audit write never rolls back the action it describes.
func (l *Logger) Record(action, entity string, entityID *uuid.UUID, userID *uuid.UUID, details map[string]any) {
	e := &models.AuditLogEntry{
		Action:  action,
		Entity:  entity,
		UserID:  userID,
		Details: details,
	}
	if entityID != nil {
		s := entityID.String()
		e.EntityID = &s
	}
	if err := l.recorder.Insert(e); err != nil {
		slog.Error("audit write failed", "action", action, "entity", entity, "error", err)
	}
}

// CRUD records a create, update, or delete on an entity.
func (l *Logger) CRUD(action, entity string, entityID uuid.UUID, userID uuid.UUID) {
	l.Record(action, entity, &entityID, &userID, nil)
}

// StatusChange records a workflow transition with the old and new status.
func (l *Logger) StatusChange(entity string, entityID uuid.UUID, userID uuid.UUID, from, to models.ContentStatus) {
	l.Record(models.AuditActionUpdateStatus, entity, &entityID, &userID, map[string]any{
		"from": string(from),
		"to":   string(to),
	})
}

// FileOperation records an upload or deletion of a media object.
func (l *Logger) FileOperation(action string, mediaID uuid.UUID, userID uuid.UUID, filename string) {
	l.Record(action, "media", &mediaID, &userID, map[string]any{
		"filename": filename,
	})
}

// AuthEvent records a login, failed login, or logout. userID is nil for
// failed logins against unknown accounts.
func (l *Logger) AuthEvent(action string, userID *uuid.UUID, email string) {
	l.Record(action, "auth", nil, userID, map[string]any{
		"email": email,
	})
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"therapycms/internal/models"
)

// AuditStore appends entries to the audit log. The log is append-only;
// there are no update or delete methods.
type AuditStore struct {
	db *sql.DB
}

// NewAuditStore creates a new AuditStore with the given database connection.
func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

// Insert writes one audit entry. Details are stored as jsonb; a nil map
// stores SQL NULL.
func (s *AuditStore) Insert(e *models.AuditLogEntry) error {
	var details any
	if e.Details != nil {
		raw, err := json.Marshal(e.Details)
		if err != nil {
			return fmt.Errorf("marshal audit details: %w", err)
		}
		details = raw
	}

	_, err := s.db.Exec(`
		INSERT INTO audit_log (action, entity, entity_id, user_id, details)
		VALUES ($1, $2, $3, $4, $5)
	`, e.Action, e.Entity, e.EntityID, e.UserID, details)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List returns one page of audit entries, newest first, plus the total
// count. When entity is non-empty the results are filtered to that entity.
func (s *AuditStore) List(entity string, page, limit int) ([]models.AuditLogEntry, int, error) {
	where := ``
	args := []any{}
	if entity != "" {
		where = ` WHERE entity = $1`
		args = append(args, entity)
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM audit_log`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}

	query := fmt.Sprintf(`
		SELECT id, action, entity, entity_id, user_id, details, created_at
		FROM audit_log%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var items []models.AuditLogEntry
	for rows.Next() {
		var e models.AuditLogEntry
		var rawDetails []byte
		if err := rows.Scan(&e.ID, &e.Action, &e.Entity, &e.EntityID, &e.UserID, &rawDetails, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit entry: %w", err)
		}
		if len(rawDetails) > 0 {
			if err := json.Unmarshal(rawDetails, &e.Details); err != nil {
				return nil, 0, fmt.Errorf("unmarshal audit details: %w", err)
			}
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}

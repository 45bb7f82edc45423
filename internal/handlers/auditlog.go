// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"therapycms/internal/pagination"
	"therapycms/internal/store"
)

// AuditLog serves the read-only audit trail view for administrators.
type AuditLog struct {
	auditStore *store.AuditStore
}

// NewAuditLog creates an AuditLog handler group.
func NewAuditLog(auditStore *store.AuditStore) *AuditLog {
	return &AuditLog{auditStore: auditStore}
}

// List returns one page of audit entries, newest first. The optional
// entity query parameter filters by entity name.
func (h *AuditLog) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 50)
	entity := r.URL.Query().Get("entity")

	items, total, err := h.auditStore.List(entity, page, limit)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"meta":  pagination.NewMeta(total, page, limit),
	})
}

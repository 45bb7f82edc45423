// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"therapycms/internal/audit"
	"therapycms/internal/cache"
	"therapycms/internal/middleware"
	"therapycms/internal/models"
	"therapycms/internal/store"
)

// Contact handles the singleton clinic contact record.
type Contact struct {
	contactStore *store.ContactStore
	audit        *audit.Logger
	cache        *cache.ResponseCache
}

// NewContact creates a Contact handler group.
func NewContact(contactStore *store.ContactStore, auditLogger *audit.Logger, responseCache *cache.ResponseCache) *Contact {
	return &Contact{
		contactStore: contactStore,
		audit:        auditLogger,
		cache:        responseCache,
	}
}

// Get returns the canonical contact record.
func (h *Contact) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.contactStore.Get()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if contact == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

// Update upserts the canonical contact record.
func (h *Contact) Update(w http.ResponseWriter, r *http.Request) {
	var form contactForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	updated, err := h.contactStore.Upsert(&models.Contact{
		Phone:           form.Phone,
		Email:           form.Email,
		Address:         form.Address,
		AddressEN:       form.AddressEN,
		BusinessHours:   form.BusinessHours,
		BusinessHoursEN: form.BusinessHoursEN,
		FacebookURL:     form.FacebookURL,
		ZaloURL:         form.ZaloURL,
		YoutubeURL:      form.YoutubeURL,
		AppointmentLink: form.AppointmentLink,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.CRUD(models.AuditActionUpdate, "contact", updated.ID, sess.UserID)
	}
	h.cache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, updated)
}

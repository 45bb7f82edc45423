// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"therapycms/internal/audit"
	"therapycms/internal/cache"
	"therapycms/internal/middleware"
	"therapycms/internal/models"
	"therapycms/internal/store"
)

// Team groups the admin CRUD handlers for team members.
type Team struct {
	teamStore *store.TeamStore
	audit     *audit.Logger
	cache     *cache.ResponseCache
}

// NewTeam creates a Team handler group.
func NewTeam(teamStore *store.TeamStore, auditLogger *audit.Logger, responseCache *cache.ResponseCache) *Team {
	return &Team{
		teamStore: teamStore,
		audit:     auditLogger,
		cache:     responseCache,
	}
}

// List returns all team members ordered by sort order.
func (h *Team) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.teamStore.List(false)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Get returns one team member by ID.
func (h *Team) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.teamStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create inserts a new team member.
func (h *Team) Create(w http.ResponseWriter, r *http.Request) {
	var form teamForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	created, err := h.teamStore.Create(teamMemberFromForm(&form))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.CRUD(models.AuditActionCreate, "team_member", created.ID, sess.UserID)
	}
	h.cache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// Update modifies an existing team member.
func (h *Team) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.teamStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var form teamForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	member := teamMemberFromForm(&form)
	member.ID = id

	if err := h.teamStore.Update(member); err != nil {
		writeStoreError(w, err)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.CRUD(models.AuditActionUpdate, "team_member", id, sess.UserID)
	}
	h.cache.InvalidateAll(r.Context())

	updated, err := h.teamStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a team member.
func (h *Team) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.teamStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.teamStore.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.CRUD(models.AuditActionDelete, "team_member", id, sess.UserID)
	}
	h.cache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func teamMemberFromForm(form *teamForm) *models.TeamMember {
	status := models.MemberStatusActive
	if form.Status != "" {
		status = models.MemberStatus(form.Status)
	}

	return &models.TeamMember{
		Name:          strings.TrimSpace(form.Name),
		NameEN:        form.NameEN,
		Title:         strings.TrimSpace(form.Title),
		TitleEN:       form.TitleEN,
		Description:   form.Description,
		DescriptionEN: form.DescriptionEN,
		SortOrder:     form.SortOrder,
		Status:        status,
		ImageID:       form.ImageID,
		ImageENID:     form.ImageENID,
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"therapycms/internal/audit"
	"therapycms/internal/cache"
	"therapycms/internal/middleware"
	"therapycms/internal/models"
	"therapycms/internal/pagination"
	"therapycms/internal/slug"
	"therapycms/internal/store"
)

// Content groups the admin CRUD handlers for one content type. The same
// handler serves posts, news, and services; the router mounts one instance
// per type.
type Content struct {
	contentType  models.ContentType
	entity       string // audit entity name, e.g. "post"
	contentStore *store.ContentStore
	audit        *audit.Logger
	cache        *cache.ResponseCache
}

// NewContent creates a Content handler group for the given type.
func NewContent(contentType models.ContentType, contentStore *store.ContentStore, auditLogger *audit.Logger, responseCache *cache.ResponseCache) *Content {
	return &Content{
		contentType:  contentType,
		entity:       string(contentType),
		contentStore: contentStore,
		audit:        auditLogger,
		cache:        responseCache,
	}
}

// List returns one page of items of this type with pagination metadata.
// Supports status, category, and search filters.
func (h *Content) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 10)

	filter := store.ListFilter{
		Type:   h.contentType,
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Page:   page,
		Limit:  limit,
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.ContentStatus(raw)
		if !status.ValidFor(h.contentType) {
			writeError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		filter.Status = status
	}
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		catID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid categoryId")
			return
		}
		filter.CategoryID = &catID
	}

	items, total, err := h.contentStore.List(filter)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"meta":  pagination.NewMeta(total, page, limit),
	})
}

// Get returns one item by ID.
func (h *Content) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.contentStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if item == nil || item.Type != h.contentType {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Create inserts a new item. The slug is generated from the title when not
// provided; a title that folds to an empty slug is a validation error.
func (h *Content) Create(w http.ResponseWriter, r *http.Request) {
	var form contentForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Validate(h.contentType); err != nil {
		writeValidationError(w, err)
		return
	}

	item, errMsg := h.fromForm(&form, nil)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && h.contentType == models.ContentTypePost {
		item.AuthorID = &sess.UserID
	}

	if item.Status == models.ContentStatusPublished {
		if !h.canPublish(r) {
			writeError(w, http.StatusForbidden, "publishing requires admin role")
			return
		}
	}

	created, err := h.contentStore.Create(item)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	h.recordAndInvalidate(r, models.AuditActionCreate, created.ID)
	writeJSON(w, http.StatusCreated, created)
}

// Update replaces an existing item's fields.
func (h *Content) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.contentStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil || existing.Type != h.contentType {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var form contentForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Validate(h.contentType); err != nil {
		writeValidationError(w, err)
		return
	}

	item, errMsg := h.fromForm(&form, existing)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	if item.Status == models.ContentStatusPublished && existing.Status != models.ContentStatusPublished {
		if !h.canPublish(r) {
			writeError(w, http.StatusForbidden, "publishing requires admin role")
			return
		}
	}

	if err := h.contentStore.Update(item); err != nil {
		writeStoreError(w, err)
		return
	}

	updated, err := h.contentStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	// A full update can carry a status transition; record it with the
	// previous and new status like the status endpoint does.
	if item.Status != existing.Status {
		if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
			h.audit.StatusChange(h.entity, id, sess.UserID, existing.Status, item.Status)
		}
	}

	h.recordAndInvalidate(r, models.AuditActionUpdate, id)
	writeJSON(w, http.StatusOK, updated)
}

// UpdateStatus transitions an item's workflow status. Moving into
// PUBLISHED requires a publishing role; SCHEDULED is rejected for
// non-post types.
func (h *Content) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.contentStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil || existing.Type != h.contentType {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var form statusForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	status := models.ContentStatus(form.Status)
	if !status.ValidFor(h.contentType) {
		writeError(w, http.StatusBadRequest, "invalid status for this content type")
		return
	}

	if status == models.ContentStatusPublished && !h.canPublish(r) {
		writeError(w, http.StatusForbidden, "publishing requires admin role")
		return
	}

	if err := h.contentStore.UpdateStatus(id, status); err != nil {
		writeStoreError(w, err)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.StatusChange(h.entity, id, sess.UserID, existing.Status, status)
	}
	h.cache.InvalidateAll(r.Context())

	updated, err := h.contentStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes an item.
func (h *Content) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.contentStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil || existing.Type != h.contentType {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.contentStore.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}

	h.recordAndInvalidate(r, models.AuditActionDelete, id)
	w.WriteHeader(http.StatusNoContent)
}

// fromForm builds a content model from a validated form. existing carries
// the identity fields on update; nil means create. Returns a non-empty
// error message for slug problems.
func (h *Content) fromForm(form *contentForm, existing *models.Content) (*models.Content, string) {
	s := strings.TrimSpace(form.Slug)
	if s == "" {
		s = slug.Generate(form.Title)
	} else {
		s = slug.Generate(s)
	}
	if s == "" {
		return nil, "title produces an empty slug; provide a slug explicitly"
	}

	status := models.ContentStatusDraft
	if form.Status != "" {
		status = models.ContentStatus(form.Status)
	} else if existing != nil {
		status = existing.Status
	}

	item := &models.Content{
		Type:               h.contentType,
		Title:              strings.TrimSpace(form.Title),
		TitleEN:            form.TitleEN,
		Slug:               s,
		Body:               form.Body,
		BodyEN:             form.BodyEN,
		ShortDescription:   form.ShortDescription,
		ShortDescriptionEN: form.ShortDescriptionEN,
		Status:             status,
		ShowOnHomepage:     form.ShowOnHomepage,
		FeatureImageID:     form.FeatureImageID,
		FeatureImageENID:   form.FeatureImageENID,
		MetaTitle:          form.MetaTitle,
		MetaTitleEN:        form.MetaTitleEN,
		MetaDescription:    form.MetaDescription,
		MetaDescriptionEN:  form.MetaDescriptionEN,
		MetaKeywords:       form.MetaKeywords,
		MetaKeywordsEN:     form.MetaKeywordsEN,
	}

	// Type-specific fields: pinning is a news concept, the category join
	// table is a post concept, the direct column serves news.
	switch h.contentType {
	case models.ContentTypeNews:
		item.Pinned = form.Pinned
		item.CategoryID = form.CategoryID
	case models.ContentTypePost:
		item.CategoryIDs = form.CategoryIDs
	}

	if existing != nil {
		item.ID = existing.ID
		item.AuthorID = existing.AuthorID
		item.PublishedAt = existing.PublishedAt
	}
	return item, ""
}

// canPublish reports whether the session's role may publish content.
func (h *Content) canPublish(r *http.Request) bool {
	sess := middleware.SessionFromCtx(r.Context())
	return sess != nil && models.Role(sess.Role).CanPublish()
}

// recordAndInvalidate writes the audit entry and clears the public cache.
func (h *Content) recordAndInvalidate(r *http.Request, action string, id uuid.UUID) {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.CRUD(action, h.entity, id, sess.UserID)
	}
	h.cache.InvalidateAll(r.Context())
}

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
	"therapycms/internal/slug"
	"therapycms/internal/store"
)

// Categories groups the admin CRUD handlers for news/post categories.
type Categories struct {
	categoryStore *store.CategoryStore
	audit         *audit.Logger
	cache         *cache.ResponseCache
}

// NewCategories creates a Categories handler group.
func NewCategories(categoryStore *store.CategoryStore, auditLogger *audit.Logger, responseCache *cache.ResponseCache) *Categories {
	return &Categories{
		categoryStore: categoryStore,
		audit:         auditLogger,
		cache:         responseCache,
	}
}

// List returns all categories with their content counts.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.categoryStore.List()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Create inserts a new category. The slug is generated from the name when
// not provided.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var form categoryForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	cat, errMsg := categoryFromForm(&form)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	created, err := h.categoryStore.Create(cat)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.CRUD(models.AuditActionCreate, "category", created.ID, sess.UserID)
	}
	h.cache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// Update modifies an existing category.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.categoryStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var form categoryForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	cat, errMsg := categoryFromForm(&form)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}
	cat.ID = id

	if err := h.categoryStore.Update(cat); err != nil {
		writeStoreError(w, err)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.CRUD(models.AuditActionUpdate, "category", id, sess.UserID)
	}
	h.cache.InvalidateAll(r.Context())

	updated, err := h.categoryStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a category. Returns 409 while content still references it.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.categoryStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.categoryStore.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.CRUD(models.AuditActionDelete, "category", id, sess.UserID)
	}
	h.cache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func categoryFromForm(form *categoryForm) (*models.Category, string) {
	s := strings.TrimSpace(form.Slug)
	if s == "" {
		s = slug.Generate(form.Name)
	} else {
		s = slug.Generate(s)
	}
	if s == "" {
		return nil, "name produces an empty slug; provide a slug explicitly"
	}

	desc := ""
	if form.Description != nil {
		desc = *form.Description
	}

	return &models.Category{
		Name:        strings.TrimSpace(form.Name),
		Slug:        s,
		Description: desc,
	}, ""
}

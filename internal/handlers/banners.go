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

// Banners groups the admin CRUD handlers for page banners.
type Banners struct {
	bannerStore *store.BannerStore
	audit       *audit.Logger
	cache       *cache.ResponseCache
}

// NewBanners creates a Banners handler group.
func NewBanners(bannerStore *store.BannerStore, auditLogger *audit.Logger, responseCache *cache.ResponseCache) *Banners {
	return &Banners{
		bannerStore: bannerStore,
		audit:       auditLogger,
		cache:       responseCache,
	}
}

// List returns all banners.
func (h *Banners) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.bannerStore.List(false)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Get returns one banner by ID.
func (h *Banners) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	banner, err := h.bannerStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if banner == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, banner)
}

// Create inserts a new banner. At most one banner may exist per type;
// a duplicate returns 409.
func (h *Banners) Create(w http.ResponseWriter, r *http.Request) {
	var form bannerForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	created, err := h.bannerStore.Create(bannerFromForm(&form))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.CRUD(models.AuditActionCreate, "banner", created.ID, sess.UserID)
	}
	h.cache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// Update modifies an existing banner.
func (h *Banners) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.bannerStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var form bannerForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	banner := bannerFromForm(&form)
	banner.ID = id

	if err := h.bannerStore.Update(banner); err != nil {
		writeStoreError(w, err)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.CRUD(models.AuditActionUpdate, "banner", id, sess.UserID)
	}
	h.cache.InvalidateAll(r.Context())

	updated, err := h.bannerStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a banner.
func (h *Banners) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.bannerStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.bannerStore.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.CRUD(models.AuditActionDelete, "banner", id, sess.UserID)
	}
	h.cache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func bannerFromForm(form *bannerForm) *models.Banner {
	status := models.BannerStatusActive
	if form.Status != "" {
		status = models.BannerStatus(form.Status)
	}

	return &models.Banner{
		Type:    models.BannerType(form.Type),
		Link:    form.Link,
		Status:  status,
		ImageID: form.ImageID,
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"therapycms/internal/audit"
	"therapycms/internal/middleware"
	"therapycms/internal/models"
	"therapycms/internal/store"
)

// Users groups the account management handlers. The router guards every
// route with the super-admin middleware.
type Users struct {
	userStore *store.UserStore
	audit     *audit.Logger
}

// NewUsers creates a Users handler group.
func NewUsers(userStore *store.UserStore, auditLogger *audit.Logger) *Users {
	return &Users{
		userStore: userStore,
		audit:     auditLogger,
	}
}

// List returns all user accounts.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.List()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": users})
}

// Create adds a new account.
func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	var form userForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	created, err := h.userStore.Create(form.Email, form.Password, form.DisplayName, models.Role(form.Role))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.CRUD(models.AuditActionCreate, "user", created.ID, sess.UserID)
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update changes an account's display name, role, and optionally password.
func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.userStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var form userUpdateForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	// A super admin may not demote themselves; that would lock account
	// management out entirely on a single-super-admin install.
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.UserID == id && models.Role(form.Role) != models.RoleSuperAdmin {
		writeError(w, http.StatusBadRequest, "cannot change your own role")
		return
	}

	if err := h.userStore.Update(id, form.DisplayName, models.Role(form.Role), form.Password); err != nil {
		writeStoreError(w, err)
		return
	}

	if sess != nil {
		h.audit.CRUD(models.AuditActionUpdate, "user", id, sess.UserID)
	}

	updated, err := h.userStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ResetTOTP clears an account's 2FA so it can be set up again.
func (h *Users) ResetTOTP(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.userStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.userStore.ResetTOTP(id); err != nil {
		writeStoreError(w, err)
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.CRUD(models.AuditActionUpdate, "user", id, sess.UserID)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes an account. Self-deletion is rejected.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.UserID == id {
		writeError(w, http.StatusBadRequest, "cannot delete your own account")
		return
	}

	existing, err := h.userStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.userStore.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}

	if sess != nil {
		h.audit.CRUD(models.AuditActionDelete, "user", id, sess.UserID)
	}
	w.WriteHeader(http.StatusNoContent)
}

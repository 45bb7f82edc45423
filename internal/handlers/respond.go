// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the CMS JSON API:
// authentication, admin CRUD for every entity, media uploads, and the
// localized public endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"therapycms/internal/store"
)

// maxBodyBytes limits JSON request bodies. Uploads use their own limit.
const maxBodyBytes = 1 << 20 // 1 MB

// writeJSON serializes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response", "error", err)
	}
}

// writeError writes the {"error": ...} envelope every failure response uses.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeValidationError writes a 400 with per-field details when the error
// comes from ozzo-validation, or a plain message otherwise.
func writeValidationError(w http.ResponseWriter, err error) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for field, ferr := range fieldErrs {
			details[field] = ferr.Error()
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "validation failed",
			"details": details,
		})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

// decodeJSON parses the request body into v, rejecting unknown fields and
// oversized bodies.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// mustMarshal serializes a payload that is known to be marshalable
// (maps and plain structs built by the handlers).
func mustMarshal(v any) []byte {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal response payload", "error", err)
		return []byte("{}")
	}
	return body
}

// idParam parses the {id} URL parameter as a UUID.
func idParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// pageParams reads page/limit query parameters with sane defaults.
func pageParams(r *http.Request, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}

// writeStoreError maps store sentinel errors onto HTTP statuses. Unmapped
// errors are logged and reported as 500.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrSlugTaken):
		writeError(w, http.StatusConflict, "slug already exists")
	case errors.Is(err, store.ErrHomepageCapReached):
		writeError(w, http.StatusConflict, "homepage item cap reached")
	case errors.Is(err, store.ErrMediaInUse):
		writeError(w, http.StatusConflict, "media is referenced by existing records")
	case errors.Is(err, store.ErrCategoryInUse):
		writeError(w, http.StatusConflict, "category is referenced by existing content")
	case errors.Is(err, store.ErrBannerTypeTaken):
		writeError(w, http.StatusConflict, "a banner of this type already exists")
	case errors.Is(err, store.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already exists")
	default:
		slog.Error("store operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

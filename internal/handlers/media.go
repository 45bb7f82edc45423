// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"therapycms/internal/audit"
	"therapycms/internal/imaging"
	"therapycms/internal/middleware"
	"therapycms/internal/models"
	"therapycms/internal/pagination"
	"therapycms/internal/storage"
	"therapycms/internal/store"
)

const (
	// maxUploadSize is the maximum allowed file upload size (50 MB).
	maxUploadSize = 50 << 20

	// thumbMaxWidth is the maximum thumbnail width in pixels.
	thumbMaxWidth = 400
)

// allowedMediaTypes defines MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"application/pdf": true,
}

// thumbableTypes are image types that support thumbnail generation.
// GIF is excluded to preserve animation; SVG is vector.
var thumbableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Media groups the media library handlers: listing, S3 upload with
// thumbnail generation, and deletion.
type Media struct {
	mediaStore *store.MediaStore
	storage    *storage.Client
	audit      *audit.Logger
}

// NewMedia creates a Media handler group. storageClient may be nil, in
// which case uploads are rejected with 503.
func NewMedia(mediaStore *store.MediaStore, storageClient *storage.Client, auditLogger *audit.Logger) *Media {
	return &Media{
		mediaStore: mediaStore,
		storage:    storageClient,
		audit:      auditLogger,
	}
}

// List returns one page of media items with public URLs resolved.
func (h *Media) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 50)

	items, total, err := h.mediaStore.List(page, limit)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if h.storage != nil {
		for i := range items {
			items[i].URL = h.storage.FileURL(items[i].S3Key)
			if items[i].ThumbS3Key != nil {
				items[i].ThumbURL = h.storage.FileURL(*items[i].ThumbS3Key)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"meta":  pagination.NewMeta(total, page, limit),
	})
}

// Get returns one media item with public URLs resolved.
func (h *Media) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.mediaStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if h.storage != nil {
		item.URL = h.storage.FileURL(item.S3Key)
		if item.ThumbS3Key != nil {
			item.ThumbURL = h.storage.FileURL(*item.ThumbS3Key)
		}
	}

	writeJSON(w, http.StatusOK, item)
}

// Upload handles multipart file upload to S3. The optional "purpose" form
// field tags what the file is for (banner, team, news, ...) and becomes
// part of the storage key.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	// Limit request body to maxUploadSize + some overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 50 MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 50 MB")
		return
	}

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	// SVG detection: DetectContentType returns text/xml or application/xml for SVGs.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}

	if !allowedMediaTypes[contentType] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file type %q is not allowed", contentType))
		return
	}

	// Seek back to start after sniffing.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process file")
		return
	}

	purpose := sanitizePurpose(r.FormValue("purpose"))

	// Generate a unique storage key.
	now := time.Now()
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	fileID := uuid.New().String()
	s3Key := fmt.Sprintf("media/%s/%d/%02d/%s%s", purpose, now.Year(), now.Month(), fileID, ext)

	// Read the entire file into memory for upload and thumbnail generation.
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	ctx := r.Context()
	if err := h.storage.Upload(ctx, s3Key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", s3Key)
		writeError(w, http.StatusInternalServerError, "failed to upload file")
		return
	}

	// Generate and upload thumbnail for supported image types.
	var thumbKey *string
	if thumbableTypes[contentType] {
		thumbData, err := imaging.Thumbnail(bytes.NewReader(fileBytes), thumbMaxWidth)
		if err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "key", s3Key)
		} else if thumbData != nil {
			tk := fmt.Sprintf("media/%s/%d/%02d/%s_thumb.jpg", purpose, now.Year(), now.Month(), fileID)
			if err := h.storage.Upload(ctx, tk, "image/jpeg", bytes.NewReader(thumbData), int64(len(thumbData))); err != nil {
				slog.Warn("thumbnail upload failed", "error", err, "key", tk)
			} else {
				thumbKey = &tk
			}
		}
	}

	media := &models.Media{
		Filename:     fileID + ext,
		OriginalName: header.Filename,
		ContentType:  contentType,
		SizeBytes:    int64(len(fileBytes)),
		S3Key:        s3Key,
		ThumbS3Key:   thumbKey,
		Purpose:      purpose,
	}
	if sess != nil {
		media.UploaderID = &sess.UserID
	}

	created, err := h.mediaStore.Create(media)
	if err != nil {
		slog.Error("media db insert failed", "error", err, "key", s3Key)
		writeError(w, http.StatusInternalServerError, "failed to save file metadata")
		return
	}

	created.URL = h.storage.FileURL(created.S3Key)
	if created.ThumbS3Key != nil {
		created.ThumbURL = h.storage.FileURL(*created.ThumbS3Key)
	}

	if sess != nil {
		h.audit.FileOperation(models.AuditActionUploadFile, created.ID, sess.UserID, created.OriginalName)
	}

	writeJSON(w, http.StatusCreated, created)
}

// Delete removes a media item from the database and S3. Returns 409 while
// content, team members, or banners still reference it.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	media, err := h.mediaStore.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if media == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.mediaStore.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}

	// Clean up S3 objects (best-effort, don't fail the request).
	if h.storage != nil {
		ctx := r.Context()
		if err := h.storage.Delete(ctx, media.S3Key); err != nil {
			slog.Warn("s3 original delete failed", "error", err, "key", media.S3Key)
		}
		if media.ThumbS3Key != nil {
			if err := h.storage.Delete(ctx, *media.ThumbS3Key); err != nil {
				slog.Warn("s3 thumbnail delete failed", "error", err, "key", *media.ThumbS3Key)
			}
		}
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		h.audit.FileOperation(models.AuditActionDeleteFile, id, sess.UserID, media.OriginalName)
	}

	w.WriteHeader(http.StatusNoContent)
}

// sanitizePurpose normalizes the purpose tag into a safe key segment.
func sanitizePurpose(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "general"
	}
	var b strings.Builder
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "general"
	}
	return b.String()
}

// extensionFromType maps a MIME type to a file extension for uploads that
// arrive without one.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	case "application/pdf":
		return ".pdf"
	}
	return ""
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"therapycms/internal/models"
)

// MediaStore handles all media-related database operations.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

// mediaColumns lists the columns selected in media queries.
const mediaColumns = `id, filename, original_name, content_type, size_bytes,
	s3_key, thumb_s3_key, purpose, uploader_id, created_at`

// scanMedia scans a media row from the result set.
func scanMedia(scanner interface{ Scan(...any) error }) (*models.Media, error) {
	var m models.Media
	err := scanner.Scan(
		&m.ID, &m.Filename, &m.OriginalName, &m.ContentType, &m.SizeBytes,
		&m.S3Key, &m.ThumbS3Key, &m.Purpose, &m.UploaderID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new media record and returns it with the generated ID.
func (s *MediaStore) Create(m *models.Media) (*models.Media, error) {
	err := s.db.QueryRow(`
		INSERT INTO media (filename, original_name, content_type, size_bytes,
			s3_key, thumb_s3_key, purpose, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+mediaColumns,
		m.Filename, m.OriginalName, m.ContentType, m.SizeBytes,
		m.S3Key, m.ThumbS3Key, m.Purpose, m.UploaderID,
	).Scan(
		&m.ID, &m.Filename, &m.OriginalName, &m.ContentType, &m.SizeBytes,
		&m.S3Key, &m.ThumbS3Key, &m.Purpose, &m.UploaderID, &m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return m, nil
}

// FindByID retrieves a single media record by its UUID.
func (s *MediaStore) FindByID(id uuid.UUID) (*models.Media, error) {
	row := s.db.QueryRow(`SELECT `+mediaColumns+` FROM media WHERE id = $1`, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// List returns one page of media items ordered by creation date descending
// plus the total count.
func (s *MediaStore) List(page, limit int) ([]models.Media, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM media`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count media: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}

	rows, err := s.db.Query(`
		SELECT `+mediaColumns+`
		FROM media
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, total, rows.Err()
}

// ReferenceCount returns how many rows still reference the media item
// across content feature images, team member portraits, and banners.
func (s *MediaStore) ReferenceCount(id uuid.UUID) (int, error) {
	var refs int
	err := s.db.QueryRow(`
		SELECT (SELECT COUNT(*) FROM content WHERE feature_image_id = $1 OR feature_image_en_id = $1)
		     + (SELECT COUNT(*) FROM team_members WHERE image_id = $1 OR image_en_id = $1)
		     + (SELECT COUNT(*) FROM banners WHERE image_id = $1)
	`, id).Scan(&refs)
	if err != nil {
		return 0, fmt.Errorf("media reference count: %w", err)
	}
	return refs, nil
}

// Delete removes a media record. Deletion is blocked with ErrMediaInUse
// while any content item, team member, or banner references it. The caller
// is responsible for removing the object from S3 afterwards.
func (s *MediaStore) Delete(id uuid.UUID) error {
	refs, err := s.ReferenceCount(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrMediaInUse
	}

	if _, err := s.db.Exec(`DELETE FROM media WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}

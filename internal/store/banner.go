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

// BannerStore handles all banner database operations.
type BannerStore struct {
	db *sql.DB
}

// NewBannerStore creates a new BannerStore with the given database connection.
func NewBannerStore(db *sql.DB) *BannerStore {
	return &BannerStore{db: db}
}

const bannerColumns = `id, type, link, status, image_id, created_at, updated_at`

func scanBanner(scanner interface{ Scan(...any) error }) (*models.Banner, error) {
	var b models.Banner
	err := scanner.Scan(&b.ID, &b.Type, &b.Link, &b.Status, &b.ImageID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns all banners. When activeOnly is set, only ACTIVE banners
// are returned (public view).
func (s *BannerStore) List(activeOnly bool) ([]models.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners`
	if activeOnly {
		query += ` WHERE status = 'ACTIVE'`
	}
	query += ` ORDER BY type`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	var items []models.Banner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// FindByID retrieves a banner by its UUID. Returns nil if not found.
func (s *BannerStore) FindByID(id uuid.UUID) (*models.Banner, error) {
	row := s.db.QueryRow(`SELECT `+bannerColumns+` FROM banners WHERE id = $1`, id)
	b, err := scanBanner(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find banner by id: %w", err)
	}
	return b, nil
}

// Create inserts a new banner. The unique constraint on type enforces the
// one-banner-per-type invariant; a duplicate returns ErrBannerTypeTaken.
func (s *BannerStore) Create(b *models.Banner) (*models.Banner, error) {
	row := s.db.QueryRow(`
		INSERT INTO banners (type, link, status, image_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+bannerColumns,
		b.Type, b.Link, b.Status, b.ImageID,
	)
	result, err := scanBanner(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrBannerTypeTaken
		}
		return nil, fmt.Errorf("create banner: %w", err)
	}
	return result, nil
}

// Update modifies an existing banner. Changing the type onto an occupied
// one returns ErrBannerTypeTaken.
func (s *BannerStore) Update(b *models.Banner) error {
	_, err := s.db.Exec(`
		UPDATE banners SET type = $1, link = $2, status = $3, image_id = $4, updated_at = NOW()
		WHERE id = $5
	`, b.Type, b.Link, b.Status, b.ImageID, b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrBannerTypeTaken
		}
		return fmt.Errorf("update banner: %w", err)
	}
	return nil
}

// Delete removes a banner by ID.
func (s *BannerStore) Delete(id uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM banners WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	return nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"therapycms/internal/models"
)

// ContentStore handles all content-related database operations.
// It serves posts, news, and services through the unified content table.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

// contentColumns lists the columns selected in content queries.
const contentColumns = `id, type, title, title_en, slug, body, body_en,
	short_description, short_description_en, status, show_on_homepage, pinned,
	category_id, feature_image_id, feature_image_en_id,
	meta_title, meta_title_en, meta_description, meta_description_en,
	meta_keywords, meta_keywords_en, author_id, published_at, created_at, updated_at`

// scanContent scans a content row from the result set.
func scanContent(scanner interface{ Scan(...any) error }) (*models.Content, error) {
	var c models.Content
	err := scanner.Scan(
		&c.ID, &c.Type, &c.Title, &c.TitleEN, &c.Slug, &c.Body, &c.BodyEN,
		&c.ShortDescription, &c.ShortDescriptionEN, &c.Status, &c.ShowOnHomepage, &c.Pinned,
		&c.CategoryID, &c.FeatureImageID, &c.FeatureImageENID,
		&c.MetaTitle, &c.MetaTitleEN, &c.MetaDescription, &c.MetaDescriptionEN,
		&c.MetaKeywords, &c.MetaKeywordsEN, &c.AuthorID, &c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Type       models.ContentType
	Status     models.ContentStatus
	CategoryID *uuid.UUID
	Search     string
	Page       int
	Limit      int
}

// List returns one page of content items matching the filter plus the
// total match count, ordered by creation date descending.
func (s *ContentStore) List(f ListFilter) ([]models.Content, int, error) {
	where := []string{"type = $1"}
	args := []any{f.Type}

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		if f.Type == models.ContentTypePost {
			where = append(where, fmt.Sprintf(
				"EXISTS (SELECT 1 FROM post_categories pc WHERE pc.post_id = content.id AND pc.category_id = $%d)", len(args)))
		} else {
			where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
		}
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf(
			"(title ILIKE $%d OR COALESCE(title_en, '') ILIKE $%d)", len(args), len(args)))
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM content WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count content: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT %s FROM content
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, contentColumns, cond, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, total, rows.Err()
}

// FindByID retrieves a content item by its UUID. Returns nil if not found.
// Post category links are loaded for post items.
func (s *ContentStore) FindByID(id uuid.UUID) (*models.Content, error) {
	row := s.db.QueryRow(`SELECT `+contentColumns+` FROM content WHERE id = $1`, id)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	if c.Type == models.ContentTypePost {
		if c.CategoryIDs, err = s.categoriesFor(c.ID); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// FindPublishedBySlug retrieves a published content item of the given type
// by its slug. Used by the public endpoints.
func (s *ContentStore) FindPublishedBySlug(contentType models.ContentType, slug string) (*models.Content, error) {
	row := s.db.QueryRow(`
		SELECT `+contentColumns+` FROM content
		WHERE type = $1 AND slug = $2 AND status = 'PUBLISHED'
	`, contentType, slug)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by slug: %w", err)
	}
	return c, nil
}

// SlugExists reports whether another row of the same type already uses the
// slug. exclude skips a row (pass uuid.Nil on create).
func (s *ContentStore) SlugExists(contentType models.ContentType, slug string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM content WHERE type = $1 AND slug = $2 AND id <> $3)
	`, contentType, slug, exclude).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new content item and returns it with the generated ID.
// The slug-uniqueness and homepage-cap checks run inside one transaction
// with the insert; the unique constraint on (type, slug) backs the check
// against concurrent writers.
func (s *ContentStore) Create(c *models.Content) (*models.Content, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create content: begin: %w", err)
	}
	defer tx.Rollback()

	var taken bool
	err = tx.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM content WHERE type = $1 AND slug = $2)
	`, c.Type, c.Slug).Scan(&taken)
	if err != nil {
		return nil, fmt.Errorf("create content: slug check: %w", err)
	}
	if taken {
		return nil, ErrSlugTaken
	}

	if c.ShowOnHomepage {
		if err := checkHomepageCap(tx, c.Type, uuid.Nil); err != nil {
			return nil, err
		}
	}

	if c.Status == models.ContentStatusPublished && c.PublishedAt == nil {
		now := time.Now()
		c.PublishedAt = &now
	}

	row := tx.QueryRow(`
		INSERT INTO content (type, title, title_en, slug, body, body_en,
			short_description, short_description_en, status, show_on_homepage, pinned,
			category_id, feature_image_id, feature_image_en_id,
			meta_title, meta_title_en, meta_description, meta_description_en,
			meta_keywords, meta_keywords_en, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING `+contentColumns,
		c.Type, c.Title, c.TitleEN, c.Slug, c.Body, c.BodyEN,
		c.ShortDescription, c.ShortDescriptionEN, c.Status, c.ShowOnHomepage, c.Pinned,
		c.CategoryID, c.FeatureImageID, c.FeatureImageENID,
		c.MetaTitle, c.MetaTitleEN, c.MetaDescription, c.MetaDescriptionEN,
		c.MetaKeywords, c.MetaKeywordsEN, c.AuthorID, c.PublishedAt,
	)
	result, err := scanContent(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create content: %w", err)
	}

	if result.Type == models.ContentTypePost && len(c.CategoryIDs) > 0 {
		if err := replaceCategories(tx, result.ID, c.CategoryIDs); err != nil {
			return nil, err
		}
		result.CategoryIDs = c.CategoryIDs
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create content: commit: %w", err)
	}
	return result, nil
}

// Update modifies an existing content item. Same transactional invariant
// checks as Create; the row being updated is excluded from both.
func (s *ContentStore) Update(c *models.Content) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("update content: begin: %w", err)
	}
	defer tx.Rollback()

	var taken bool
	err = tx.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM content WHERE type = $1 AND slug = $2 AND id <> $3)
	`, c.Type, c.Slug, c.ID).Scan(&taken)
	if err != nil {
		return fmt.Errorf("update content: slug check: %w", err)
	}
	if taken {
		return ErrSlugTaken
	}

	if c.ShowOnHomepage {
		if err := checkHomepageCap(tx, c.Type, c.ID); err != nil {
			return err
		}
	}

	if c.Status == models.ContentStatusPublished && c.PublishedAt == nil {
		now := time.Now()
		c.PublishedAt = &now
	}

	_, err = tx.Exec(`
		UPDATE content SET
			title = $1, title_en = $2, slug = $3, body = $4, body_en = $5,
			short_description = $6, short_description_en = $7, status = $8,
			show_on_homepage = $9, pinned = $10, category_id = $11,
			feature_image_id = $12, feature_image_en_id = $13,
			meta_title = $14, meta_title_en = $15,
			meta_description = $16, meta_description_en = $17,
			meta_keywords = $18, meta_keywords_en = $19,
			published_at = $20, updated_at = NOW()
		WHERE id = $21
	`, c.Title, c.TitleEN, c.Slug, c.Body, c.BodyEN,
		c.ShortDescription, c.ShortDescriptionEN, c.Status,
		c.ShowOnHomepage, c.Pinned, c.CategoryID,
		c.FeatureImageID, c.FeatureImageENID,
		c.MetaTitle, c.MetaTitleEN,
		c.MetaDescription, c.MetaDescriptionEN,
		c.MetaKeywords, c.MetaKeywordsEN,
		c.PublishedAt, c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("update content: %w", err)
	}

	if c.Type == models.ContentTypePost {
		if err := replaceCategories(tx, c.ID, c.CategoryIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update content: commit: %w", err)
	}
	return nil
}

// UpdateStatus changes only the status of a content item. The first
// transition to PUBLISHED stamps published_at.
func (s *ContentStore) UpdateStatus(id uuid.UUID, status models.ContentStatus) error {
	_, err := s.db.Exec(`
		UPDATE content SET
			status = $2,
			published_at = CASE
				WHEN $2 = 'PUBLISHED' AND published_at IS NULL THEN NOW()
				ELSE published_at
			END,
			updated_at = NOW()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("update content status: %w", err)
	}
	return nil
}

// Delete removes a content item by ID. Post category links cascade.
func (s *ContentStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// ListPublished returns one page of published content of the given type
// plus the total count. News is ordered pinned-first.
func (s *ContentStore) ListPublished(contentType models.ContentType, page, limit int) ([]models.Content, int, error) {
	var total int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM content WHERE type = $1 AND status = 'PUBLISHED'
	`, contentType).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count published content: %w", err)
	}

	if limit <= 0 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}

	rows, err := s.db.Query(`
		SELECT `+contentColumns+` FROM content
		WHERE type = $1 AND status = 'PUBLISHED'
		ORDER BY pinned DESC, published_at DESC NULLS LAST
		LIMIT $2 OFFSET $3
	`, contentType, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list published content: %w", err)
	}
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, total, rows.Err()
}

// ListHomepage returns the published items of a type flagged for homepage
// display, newest first.
func (s *ContentStore) ListHomepage(contentType models.ContentType) ([]models.Content, error) {
	rows, err := s.db.Query(`
		SELECT `+contentColumns+` FROM content
		WHERE type = $1 AND status = 'PUBLISHED' AND show_on_homepage
		ORDER BY published_at DESC NULLS LAST
	`, contentType)
	if err != nil {
		return nil, fmt.Errorf("list homepage content: %w", err)
	}
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// checkHomepageCap enforces the per-type homepage cap inside the caller's
// transaction. exclude skips the row being updated so re-saving an already
// flagged item does not count it twice.
func checkHomepageCap(tx *sql.Tx, contentType models.ContentType, exclude uuid.UUID) error {
	allowed := contentType.HomepageCap()
	if allowed == 0 {
		return nil
	}

	var flagged int
	err := tx.QueryRow(`
		SELECT COUNT(*) FROM content
		WHERE type = $1 AND show_on_homepage AND id <> $2
	`, contentType, exclude).Scan(&flagged)
	if err != nil {
		return fmt.Errorf("homepage cap check: %w", err)
	}
	if flagged >= allowed {
		return ErrHomepageCapReached
	}
	return nil
}

// replaceCategories rewrites the post_categories links for a post.
func replaceCategories(tx *sql.Tx, postID uuid.UUID, categoryIDs []uuid.UUID) error {
	if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post categories: %w", err)
	}
	for _, catID := range categoryIDs {
		if _, err := tx.Exec(`
			INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)
		`, postID, catID); err != nil {
			return fmt.Errorf("link post category: %w", err)
		}
	}
	return nil
}

// categoriesFor loads the category links of a post.
func (s *ContentStore) categoriesFor(postID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(`
		SELECT category_id FROM post_categories WHERE post_id = $1
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("post categories: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan post category: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

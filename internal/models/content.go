// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentType distinguishes posts, news, and services in the unified
// content table.
type ContentType string

const (
	ContentTypePost    ContentType = "post"
	ContentTypeNews    ContentType = "news"
	ContentTypeService ContentType = "service"
)

// Valid reports whether the content type is one of the known values.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypePost, ContentTypeNews, ContentTypeService:
		return true
	}
	return false
}

// HomepageCap returns the maximum number of items of this type that may be
// flagged for homepage display at the same time. Zero means no cap.
func (t ContentType) HomepageCap() int {
	switch t {
	case ContentTypeNews:
		return 3
	case ContentTypeService:
		return 4
	}
	return 0
}

// ContentStatus represents the publishing state of a content item.
type ContentStatus string

const (
	ContentStatusDraft         ContentStatus = "DRAFT"
	ContentStatusPendingReview ContentStatus = "PENDING_REVIEW"
	ContentStatusPublished     ContentStatus = "PUBLISHED"
	ContentStatusScheduled     ContentStatus = "SCHEDULED"
	ContentStatusArchived      ContentStatus = "ARCHIVED"
)

// Valid reports whether the status is one of the known values.
func (s ContentStatus) Valid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusPendingReview, ContentStatusPublished,
		ContentStatusScheduled, ContentStatusArchived:
		return true
	}
	return false
}

// ValidFor reports whether the status may be applied to the given content
// type. SCHEDULED exists only for posts.
func (s ContentStatus) ValidFor(t ContentType) bool {
	if !s.Valid() {
		return false
	}
	if s == ContentStatusScheduled && t != ContentTypePost {
		return false
	}
	return true
}

// Content represents a post, news item, or service. The three types share
// one table, differentiated by the Type field. Fields come in vi/en pairs;
// the English side is optional and falls back to the default language at
// read time.
type Content struct {
	ID                 uuid.UUID     `json:"id"`
	Type               ContentType   `json:"type"`
	Title              string        `json:"title"`
	TitleEN            *string       `json:"title_en,omitempty"`
	Slug               string        `json:"slug"`
	Body               string        `json:"body"`
	BodyEN             *string       `json:"body_en,omitempty"`
	ShortDescription   *string       `json:"short_description,omitempty"`
	ShortDescriptionEN *string       `json:"short_description_en,omitempty"`
	Status             ContentStatus `json:"status"`
	ShowOnHomepage     bool          `json:"show_on_homepage"`
	Pinned             bool          `json:"pinned"` // News only
	CategoryID         *uuid.UUID    `json:"category_id,omitempty"`
	FeatureImageID     *uuid.UUID    `json:"feature_image_id,omitempty"`
	FeatureImageENID   *uuid.UUID    `json:"feature_image_en_id,omitempty"`
	MetaTitle          *string       `json:"meta_title,omitempty"`
	MetaTitleEN        *string       `json:"meta_title_en,omitempty"`
	MetaDescription    *string       `json:"meta_description,omitempty"`
	MetaDescriptionEN  *string       `json:"meta_description_en,omitempty"`
	MetaKeywords       *string       `json:"meta_keywords,omitempty"`
	MetaKeywordsEN     *string       `json:"meta_keywords_en,omitempty"`
	AuthorID           *uuid.UUID    `json:"author_id,omitempty"` // Posts only
	PublishedAt        *time.Time    `json:"published_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	// Virtual field populated for posts, which use a many-to-many
	// category relation instead of the category_id column.
	CategoryIDs []uuid.UUID `json:"category_ids,omitempty"`
}

// IsPublished returns true if the content item is in published status.
func (c *Content) IsPublished() bool {
	return c.Status == ContentStatusPublished
}

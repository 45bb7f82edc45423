// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// BannerType identifies the page section a banner belongs to.
// At most one banner may exist per type.
type BannerType string

const (
	BannerTypeHomepage BannerType = "HOMEPAGE"
	BannerTypeService  BannerType = "SERVICE"
	BannerTypeNews     BannerType = "NEWS"
	BannerTypeAbout    BannerType = "ABOUT"
)

// Valid reports whether the banner type is one of the known values.
func (t BannerType) Valid() bool {
	switch t {
	case BannerTypeHomepage, BannerTypeService, BannerTypeNews, BannerTypeAbout:
		return true
	}
	return false
}

// BannerStatus is the visibility state of a banner.
type BannerStatus string

const (
	BannerStatusActive   BannerStatus = "ACTIVE"
	BannerStatusInactive BannerStatus = "INACTIVE"
)

// Valid reports whether the status is one of the known values.
func (s BannerStatus) Valid() bool {
	return s == BannerStatusActive || s == BannerStatusInactive
}

// Banner is a hero image for one of the public page sections.
type Banner struct {
	ID        uuid.UUID    `json:"id"`
	Type      BannerType   `json:"type"`
	Link      *string      `json:"link,omitempty"`
	Status    BannerStatus `json:"status"`
	ImageID   *uuid.UUID   `json:"image_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

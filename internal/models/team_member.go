// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// MemberStatus is the visibility state of a team member.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
)

// Valid reports whether the status is one of the known values.
func (s MemberStatus) Valid() bool {
	return s == MemberStatusActive || s == MemberStatusInactive
}

// TeamMember is a therapist or staff member shown on the about page.
// Portrait photos can differ per language (e.g. localized name badges),
// hence the paired image references.
type TeamMember struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	NameEN        *string      `json:"name_en,omitempty"`
	Title         string       `json:"title"`
	TitleEN       *string      `json:"title_en,omitempty"`
	Description   *string      `json:"description,omitempty"`
	DescriptionEN *string      `json:"description_en,omitempty"`
	SortOrder     int          `json:"sort_order"`
	Status        MemberStatus `json:"status"`
	ImageID       *uuid.UUID   `json:"image_id,omitempty"`
	ImageENID     *uuid.UUID   `json:"image_en_id,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

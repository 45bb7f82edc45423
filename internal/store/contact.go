// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"therapycms/internal/models"
)

// ContactStore handles the clinic contact record. The table may hold
// several rows; the first ACTIVE one is treated as canonical.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore creates a new ContactStore with the given database connection.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, phone, email, address, address_en,
	business_hours, business_hours_en, facebook_url, zalo_url, youtube_url,
	appointment_link, status, created_at, updated_at`

func scanContact(scanner interface{ Scan(...any) error }) (*models.Contact, error) {
	var c models.Contact
	err := scanner.Scan(
		&c.ID, &c.Phone, &c.Email, &c.Address, &c.AddressEN,
		&c.BusinessHours, &c.BusinessHoursEN, &c.FacebookURL, &c.ZaloURL, &c.YoutubeURL,
		&c.AppointmentLink, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get returns the canonical contact record: the oldest ACTIVE row.
// Returns nil if none exists.
func (s *ContactStore) Get() (*models.Contact, error) {
	row := s.db.QueryRow(`
		SELECT ` + contactColumns + ` FROM contact
		WHERE status = 'ACTIVE'
		ORDER BY created_at
		LIMIT 1
	`)
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// Upsert updates the canonical contact row, creating it when missing.
func (s *ContactStore) Upsert(c *models.Contact) (*models.Contact, error) {
	current, err := s.Get()
	if err != nil {
		return nil, err
	}

	if current == nil {
		row := s.db.QueryRow(`
			INSERT INTO contact (phone, email, address, address_en,
				business_hours, business_hours_en, facebook_url, zalo_url, youtube_url,
				appointment_link, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'ACTIVE')
			RETURNING `+contactColumns,
			c.Phone, c.Email, c.Address, c.AddressEN,
			c.BusinessHours, c.BusinessHoursEN, c.FacebookURL, c.ZaloURL, c.YoutubeURL,
			c.AppointmentLink,
		)
		result, err := scanContact(row)
		if err != nil {
			return nil, fmt.Errorf("create contact: %w", err)
		}
		return result, nil
	}

	row := s.db.QueryRow(`
		UPDATE contact SET
			phone = $1, email = $2, address = $3, address_en = $4,
			business_hours = $5, business_hours_en = $6,
			facebook_url = $7, zalo_url = $8, youtube_url = $9,
			appointment_link = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING `+contactColumns,
		c.Phone, c.Email, c.Address, c.AddressEN,
		c.BusinessHours, c.BusinessHoursEN,
		c.FacebookURL, c.ZaloURL, c.YoutubeURL,
		c.AppointmentLink, current.ID,
	)
	result, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return result, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact holds the clinic's contact details shown across the public site.
// The table may hold several rows; the first ACTIVE one is canonical.
type Contact struct {
	ID              uuid.UUID `json:"id"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	Address         string    `json:"address"`
	AddressEN       *string   `json:"address_en,omitempty"`
	BusinessHours   *string   `json:"business_hours,omitempty"`
	BusinessHoursEN *string   `json:"business_hours_en,omitempty"`
	FacebookURL     *string   `json:"facebook_url,omitempty"`
	ZaloURL         *string   `json:"zalo_url,omitempty"`
	YoutubeURL      *string   `json:"youtube_url,omitempty"`
	AppointmentLink *string   `json:"appointment_link,omitempty"`
	Status          string    `json:"status"` // ACTIVE / INACTIVE
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleEditor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// CanPublish reports whether a user with this role may move content into
// the published state. Editors can draft and submit for review but not
// publish.
func (r Role) CanPublish() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// CanManageUsers reports whether this role may create, update, or delete
// other user accounts.
func (r Role) CanManageUsers() bool {
	return r == RoleSuperAdmin
}

// User represents a CMS user with authentication and 2FA fields.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

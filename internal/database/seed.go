package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// super admin and an empty ACTIVE contact record. It is a no-op when
// users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@therapycms.local", string(hash), "Admin", "super_admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// A canonical contact row so the public contact endpoint never 404s
	// on a fresh install.
	_, err = db.Exec(`
		INSERT INTO contact (phone, email, status)
		VALUES ('', '', 'ACTIVE')
	`)
	if err != nil {
		return fmt.Errorf("seed insert contact: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@therapycms.local",
		"password", "admin",
	)

	return nil
}

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// English language and an administrator account. The admin will be
// prompted to set up 2FA on first login (totp_enabled = false).
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	if _, err := db.Exec(`
		INSERT INTO languages (code, name) VALUES ('en', 'English')
		ON CONFLICT (code) DO NOTHING
	`); err != nil {
		return fmt.Errorf("seed insert language: %w", err)
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert the default admin. 2FA is not enabled — they must set it up
	// on first login.
	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, totp_enabled)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "admin@pressflow.local", string(hash), "Admin", false).Scan(&adminID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO user_roles (user_id, role) VALUES ($1, 'Administrator')
	`, adminID); err != nil {
		return fmt.Errorf("seed insert admin role: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@pressflow.local",
		"password", "admin",
	)

	return nil
}

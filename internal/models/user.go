// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a named permission grant. A user holds one or more roles;
// stage-transition rights are derived from the full set.
type Role string

const (
	RoleContentEditor1 Role = "Content Editor Level 1"
	RoleContentEditor2 Role = "Content Editor Level 2"
	RoleContentEditor3 Role = "Content Editor Level 3"
	RoleLanguageEditor Role = "Language Editor"
	RoleChiefEditor    Role = "Chief Editor"
	RoleAdministrator  Role = "Administrator"
	RolePostAdmin      Role = "Post Admin"
	RoleAuthor         Role = "Author"
	RoleContentWriter  Role = "Content Writer"
)

// KnownRole reports whether r is one of the defined roles.
func KnownRole(r Role) bool {
	switch r {
	case RoleContentEditor1, RoleContentEditor2, RoleContentEditor3,
		RoleLanguageEditor, RoleChiefEditor, RoleAdministrator,
		RolePostAdmin, RoleAuthor, RoleContentWriter:
		return true
	}
	return false
}

// User represents a CMS user with authentication, 2FA and role assignments.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	Roles        []Role    `json:"roles"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// IsAdmin returns true if the user may override the ordered stage machine.
// Administrator and Post Admin both carry the override grant.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdministrator) || u.HasRole(RolePostAdmin)
}

// Needs2FASetup returns true if the user has not completed 2FA enrollment.
// All users must set up 2FA on their first login.
func (u *User) Needs2FASetup() bool {
	return !u.TOTPEnabled
}

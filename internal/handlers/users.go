// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pressflow/internal/middleware"
	"pressflow/internal/models"
	"pressflow/internal/store"
)

// Users groups the admin-only user management handlers.
type Users struct {
	userStore *store.UserStore
}

// NewUsers creates a new Users handler group.
func NewUsers(userStore *store.UserStore) *Users {
	return &Users{userStore: userStore}
}

// List returns all users with their role assignments.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.List()
	if err != nil {
		serverError(w, "list users failed", err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// Create adds a user with an initial password and role set.
func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string   `json:"email"`
		Password    string   `json:"password"`
		DisplayName string   `json:"display_name"`
		Roles       []string `json:"roles"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 12 {
		writeError(w, http.StatusBadRequest, "password must be at least 12 characters")
		return
	}

	roles, msg := parseRoles(req.Roles)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := h.userStore.FindByEmail(req.Email)
	if err != nil {
		serverError(w, "user lookup failed", err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	user, err := h.userStore.Create(req.Email, req.Password, req.DisplayName, roles)
	if err != nil {
		serverError(w, "create user failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// SetRoles replaces a user's role assignments.
func (h *Users) SetRoles(w http.ResponseWriter, r *http.Request) {
	userID, ok := userPathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Roles []string `json:"roles"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	roles, msg := parseRoles(req.Roles)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.userStore.SetRoles(userID, roles); err != nil {
		serverError(w, "set roles failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// Reset2FA clears a user's TOTP enrollment so they re-enroll on next login.
func (h *Users) Reset2FA(w http.ResponseWriter, r *http.Request) {
	userID, ok := userPathID(w, r)
	if !ok {
		return
	}

	if err := h.userStore.ResetTOTP(userID); err != nil {
		serverError(w, "reset totp failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

// Delete removes a user account. Self-deletion is refused.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userPathID(w, r)
	if !ok {
		return
	}

	if id := middleware.IdentityFromCtx(r.Context()); id.Data.UserID == userID {
		writeError(w, http.StatusConflict, "cannot delete your own account")
		return
	}

	if err := h.userStore.Delete(userID); err != nil {
		serverError(w, "delete user failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// parseRoles validates a role name list.
func parseRoles(raw []string) ([]models.Role, string) {
	if len(raw) == 0 {
		return nil, "at least one role is required"
	}
	roles := make([]models.Role, len(raw))
	for i, name := range raw {
		role := models.Role(name)
		if !models.KnownRole(role) {
			return nil, "unknown role: " + name
		}
		roles[i] = role
	}
	return roles, ""
}

// userPathID parses the {id} path parameter.
func userPathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return uuid.Nil, false
	}
	return id, true
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"pressflow/internal/middleware"
	"pressflow/internal/store"
	"pressflow/internal/token"
)

const totpIssuer = "PressFlow"

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	tokens    *token.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(tokens *token.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		tokens:    tokens,
		userStore: userStore,
	}
}

// Login validates credentials and issues a bearer token. The token starts
// with the 2FA step pending; the client must call the verify endpoint
// before the token grants access to protected routes.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	user, err := a.userStore.FindByEmail(req.Email)
	if err != nil {
		serverError(w, "login lookup failed", err)
		return
	}
	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	roles := make([]string, len(user.Roles))
	for i, role := range user.Roles {
		roles[i] = string(role)
	}

	tok, err := a.tokens.Create(r.Context(), &token.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Roles:       roles,
		TwoFADone:   false,
	})
	if err != nil {
		serverError(w, "token create failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":         tok,
		"needs2FASetup": user.Needs2FASetup(),
	})
}

// TwoFASetup generates a fresh TOTP secret for the caller and returns the
// provisioning URL plus a base64-encoded QR code PNG for the authenticator
// app. Requires a password-authenticated token; 2FA completion is not
// required yet, since this is the enrollment step.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: id.Data.Email,
	})
	if err != nil {
		serverError(w, "totp generate failed", err)
		return
	}

	if err := a.userStore.SetTOTPSecret(id.Data.UserID, key.Secret()); err != nil {
		serverError(w, "save totp secret failed", err)
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		serverError(w, "qr code generation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"secret": key.Secret(),
		"url":    key.URL(),
		"qrCode": base64.StdEncoding.EncodeToString(qrPNG),
	})
}

// TwoFAVerify validates a TOTP code and marks the bearer token as fully
// authenticated. First-time verification also completes enrollment.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())

	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	user, err := a.userStore.FindByID(id.Data.UserID)
	if err != nil {
		serverError(w, "user lookup for 2fa failed", err)
		return
	}
	if user == nil || user.TOTPSecret == nil {
		writeError(w, http.StatusConflict, "two-factor setup required")
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, "invalid verification code")
		return
	}

	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(user.ID); err != nil {
			serverError(w, "enable totp failed", err)
			return
		}
	}

	id.Data.TwoFADone = true
	if err := a.tokens.Update(r.Context(), id.Token, id.Data); err != nil {
		serverError(w, "token update failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

// Logout invalidates the caller's bearer token.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())
	if err := a.tokens.Destroy(r.Context(), id.Token); err != nil {
		slog.Error("token destroy failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"loggedOut": true})
}

// Me returns the authenticated caller's identity and role set.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          id.Data.UserID,
		"email":       id.Data.Email,
		"displayName": id.Data.DisplayName,
		"roles":       id.Data.Roles,
	})
}

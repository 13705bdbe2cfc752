// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"pressflow/internal/models"
	"pressflow/internal/token"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	Token string
	Data  *token.Data
}

// Roles returns the caller's roles as model values.
func (id *Identity) Roles() []models.Role {
	roles := make([]models.Role, len(id.Data.Roles))
	for i, r := range id.Data.Roles {
		roles[i] = models.Role(r)
	}
	return roles
}

// IsAdmin reports whether the caller carries an administrative role.
func (id *Identity) IsAdmin() bool {
	for _, r := range id.Roles() {
		if r == models.RoleAdministrator || r == models.RolePostAdmin {
			return true
		}
	}
	return false
}

// IdentityFromCtx returns the authenticated identity, or nil for
// anonymous requests.
func IdentityFromCtx(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// LoadToken resolves the Authorization bearer token against the token
// store and attaches the identity to the request context. Requests
// without a valid token pass through anonymous; gating is left to
// RequireAuth.
func LoadToken(tokens *token.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" {
				next.ServeHTTP(w, r)
				return
			}

			data, err := tokens.Get(r.Context(), tok)
			if err != nil || data == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, &Identity{Token: tok, Data: data})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromCtx(r.Context()) == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Require2FA rejects callers who authenticated with a password but have
// not completed the TOTP step of login.
func Require2FA(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFromCtx(r.Context())
		if id == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !id.Data.TwoFADone {
			writeAuthError(w, http.StatusForbidden, "two-factor verification required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects callers without an administrative role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFromCtx(r.Context())
		if id == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !id.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, "administrator access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	tok, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(tok)
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}

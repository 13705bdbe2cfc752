// Package router sets up all HTTP routes and middleware chains for the
// PressFlow API. Routes are organized into the public read surface, the
// auth endpoints, and the token-protected editorial API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pressflow/internal/handlers"
	"pressflow/internal/middleware"
	"pressflow/internal/token"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(
	tokens *token.Store,
	loginLimiter *middleware.RateLimiter,
	auth *handlers.Auth,
	posts *handlers.Posts,
	categories *handlers.Categories,
	languages *handlers.Languages,
	users *handlers.Users,
	public *handlers.Public,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check, no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LoadToken(tokens))

		// Login is rate-limited per IP against credential stuffing.
		r.With(loginLimiter.Middleware).Post("/auth/login", auth.Login)

		// Auth endpoints that need a token but not completed 2FA: the
		// enrollment and verification steps themselves.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/auth/2fa/setup", auth.TwoFASetup)
			r.Post("/auth/2fa/verify", auth.TwoFAVerify)
			r.Post("/auth/logout", auth.Logout)
		})

		// Fully authenticated editorial API.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/auth/me", auth.Me)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", posts.List)
				r.Post("/", posts.Create)
				r.Get("/{id}", posts.Get)
				r.Put("/{id}", posts.Update)
				r.Put("/{id}/draft", posts.SaveDraft)
				r.Post("/{id}/edit", posts.StartEdit)
				r.Delete("/{id}/edit", posts.CancelEdit)
				r.Post("/{id}/status", posts.UpdateStatus)
				r.Get("/{id}/approvals", posts.Approvals)
				r.Get("/{id}/revisions", posts.Revisions)

				// Admin-only overrides.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/{id}/status/admin", posts.UpdateStatusByAdmin)
					r.Delete("/{id}", posts.Delete)
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categories.List)
				r.Get("/tree", categories.Tree)
				r.Post("/", categories.Create)
				r.Put("/reorder", categories.Reorder)
				r.Put("/{id}", categories.Update)
				r.Delete("/{id}", categories.Delete)
			})

			r.Route("/languages", func(r chi.Router) {
				r.Get("/", languages.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", languages.Create)
					r.Put("/{id}", languages.Update)
					r.Delete("/{id}", languages.Delete)
				})
			})

			// User management, admin only.
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", users.List)
				r.Post("/", users.Create)
				r.Put("/{id}/roles", users.SetRoles)
				r.Post("/{id}/reset-2fa", users.Reset2FA)
				r.Delete("/{id}", users.Delete)
			})
		})
	})

	// Public read surface: published content only.
	r.Route("/public", func(r chi.Router) {
		r.Get("/{type}", public.ListPublished)
		r.Get("/{type}/{slug}", public.GetPublished)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests needing PostgreSQL are skipped when it is
// unavailable; token and cache storage run against an in-process Valkey.
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"pressflow/internal/cache"
	"pressflow/internal/database"
	"pressflow/internal/middleware"
	"pressflow/internal/models"
	"pressflow/internal/store"
	"pressflow/internal/token"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "pressflow")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "pressflow")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv is the wired handler stack used by the flow tests.
type testEnv struct {
	db       *sql.DB
	tokens   *token.Store
	cache    *cache.ContentCache
	users    *store.UserStore
	contents *store.ContentStore
	router   chi.Router
}

// newTestEnv wires stores, token storage and a router the same way main does.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	env := &testEnv{
		db:       db,
		tokens:   token.NewStore(client, time.Hour),
		cache:    cache.NewContentCache(client, time.Minute),
		users:    store.NewUserStore(db),
		contents: store.NewContentStore(db),
	}

	auth := NewAuth(env.tokens, env.users)
	posts := NewPosts(env.contents, env.users, store.NewRevisionStore(db), env.cache)
	public := NewPublic(env.contents, env.cache)

	r := chi.NewRouter()
	r.Post("/api/auth/login", auth.Login)
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadToken(env.tokens))
		r.Use(middleware.RequireAuth)
		r.Post("/api/auth/2fa/verify", auth.TwoFAVerify)
		r.Post("/api/auth/logout", auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Require2FA)
			r.Get("/api/auth/me", auth.Me)
			r.Get("/api/posts", posts.List)
			r.Post("/api/posts", posts.Create)
			r.Get("/api/posts/{id}", posts.Get)
			r.Put("/api/posts/{id}", posts.Update)
			r.Put("/api/posts/{id}/draft", posts.SaveDraft)
			r.Post("/api/posts/{id}/edit", posts.StartEdit)
			r.Delete("/api/posts/{id}/edit", posts.CancelEdit)
			r.Post("/api/posts/{id}/status", posts.UpdateStatus)
			r.Get("/api/posts/{id}/approvals", posts.Approvals)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/api/posts/{id}/status/admin", posts.UpdateStatusByAdmin)
				r.Delete("/api/posts/{id}", posts.Delete)
			})
		})
	})
	r.Get("/public/{type}", public.ListPublished)
	r.Get("/public/{type}/{slug}", public.GetPublished)

	env.router = r
	return env
}

// createUser inserts a user with the given roles and removes it on cleanup.
func (env *testEnv) createUser(t *testing.T, roles ...models.Role) *models.User {
	t.Helper()

	email := "h-" + uuid.NewString()[:8] + "@example.com"
	user, err := env.users.Create(email, "correct-horse-battery", "Handler Test User", roles)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { env.users.Delete(user.ID) })
	return user
}

// loginAs issues a fully verified bearer token for the user, bypassing the
// TOTP exchange.
func (env *testEnv) loginAs(t *testing.T, user *models.User) string {
	t.Helper()

	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}
	tok, err := env.tokens.Create(context.Background(), &token.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Roles:       roles,
		TwoFADone:   true,
	})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return tok
}

// createLanguage inserts a throwaway language.
func (env *testEnv) createLanguage(t *testing.T) *models.Language {
	t.Helper()

	lang, err := store.NewLanguageStore(env.db).Create("t"+uuid.NewString()[:6], "Test Language")
	if err != nil {
		t.Fatalf("create language: %v", err)
	}
	t.Cleanup(func() { store.NewLanguageStore(env.db).Delete(lang.ID) })
	return lang
}

// do performs a request against the test router.
func (env *testEnv) do(t *testing.T, method, path, bearer string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// decodeBody unmarshals a JSON response body into a map.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

// mustStatus fails the test unless the recorder carries the wanted status.
func mustStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", rr.Code, want, rr.Body.String())
	}
}

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"pressflow/internal/database"
	"pressflow/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "pressflow")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "pressflow")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser creates a throwaway user with the given roles and registers
// cleanup. Returns the full user with roles loaded.
func testUser(t *testing.T, db *sql.DB, roles ...models.Role) *models.User {
	t.Helper()

	users := NewUserStore(db)
	email := "test-" + uuid.NewString()[:8] + "@pressflow.local"
	u, err := users.Create(email, "password123", "Test User", roles)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u
}

// testLanguage returns a language row for content creation, creating a
// throwaway one so tests do not depend on seed data.
func testLanguage(t *testing.T, db *sql.DB) *models.Language {
	t.Helper()

	langs := NewLanguageStore(db)
	code := "t" + uuid.NewString()[:7]
	l, err := langs.Create(code, "Test Language "+code)
	if err != nil {
		t.Fatalf("create test language: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM languages WHERE id = $1", l.ID) })
	return l
}

// testContent inserts a content item at the given stage and registers cleanup.
func testContent(t *testing.T, db *sql.DB, author *models.User, lang *models.Language, stage models.Stage) *models.Content {
	t.Helper()

	contents := NewContentStore(db)
	c := &models.Content{
		Type:       models.PostTypeArticle,
		Title:      "Store Test Item",
		Slug:       "store-test-" + uuid.NewString()[:8],
		Body:       "original body",
		Status:     stage,
		LanguageID: lang.ID,
		AuthorID:   author.ID,
	}
	created, err := contents.Create(c)
	if err != nil {
		t.Fatalf("create test content: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM content WHERE id = $1", created.ID) })
	return created
}

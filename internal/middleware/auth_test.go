package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pressflow/internal/token"
)

func testTokens(t *testing.T) *token.Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return token.NewStore(client, time.Hour)
}

func identityEcho(t *testing.T, captured **Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = IdentityFromCtx(r.Context())
		w.Write([]byte("ok"))
	})
}

func TestLoadTokenAttachesIdentity(t *testing.T) {
	tokens := testTokens(t)

	tok, err := tokens.Create(context.Background(), &token.Data{
		UserID:    uuid.New(),
		Email:     "editor@example.com",
		Roles:     []string{"Content Editor Level 2"},
		TwoFADone: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var got *Identity
	handler := LoadToken(tokens)(identityEcho(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("identity not attached")
	}
	if got.Data.Email != "editor@example.com" {
		t.Errorf("Email = %q", got.Data.Email)
	}
	if got.Token != tok {
		t.Error("token not carried on identity")
	}
}

func TestLoadTokenUnknownTokenIsAnonymous(t *testing.T) {
	tokens := testTokens(t)

	var got *Identity
	handler := LoadToken(tokens)(identityEcho(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer deadbeef")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != nil {
		t.Error("unknown token should leave request anonymous")
	}
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	t.Run("anonymous rejected", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})

	t.Run("authenticated passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		id := &Identity{Token: "t", Data: &token.Data{UserID: uuid.New()}}
		req = req.WithContext(context.WithValue(req.Context(), identityKey, id))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rr.Code)
		}
	})
}

func TestRequire2FA(t *testing.T) {
	handler := Require2FA(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	t.Run("pending 2FA rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		id := &Identity{Token: "t", Data: &token.Data{UserID: uuid.New(), TwoFADone: false}}
		req = req.WithContext(context.WithValue(req.Context(), identityKey, id))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rr.Code)
		}
	})

	t.Run("verified passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		id := &Identity{Token: "t", Data: &token.Data{UserID: uuid.New(), TwoFADone: true}}
		req = req.WithContext(context.WithValue(req.Context(), identityKey, id))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rr.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	tests := []struct {
		name  string
		roles []string
		want  int
	}{
		{"administrator", []string{"Administrator"}, http.StatusOK},
		{"post admin", []string{"Post Admin"}, http.StatusOK},
		{"chief editor", []string{"Chief Editor"}, http.StatusForbidden},
		{"content editor", []string{"Content Editor Level 3"}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			id := &Identity{Token: "t", Data: &token.Data{UserID: uuid.New(), Roles: tt.roles, TwoFADone: true}}
			req = req.WithContext(context.WithValue(req.Context(), identityKey, id))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}

	t.Run("anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"Bearer  abc123 ", "abc123"},
		{"abc123", ""},
		{"Basic abc123", ""},
		{"", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if got := bearerToken(req); got != tt.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"therapycms/internal/audit"
	"therapycms/internal/cache"
	"therapycms/internal/database"
	"therapycms/internal/middleware"
	"therapycms/internal/models"
	"therapycms/internal/session"
	"therapycms/internal/store"
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
	user := envOr("POSTGRES_USER", "therapycms")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "therapycms")
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

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "public:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Valkey        *redis.Client
	Sessions      *session.Store
	ContentStore  *store.ContentStore
	CategoryStore *store.CategoryStore
	UserStore     *store.UserStore
	MediaStore    *store.MediaStore
	TeamStore     *store.TeamStore
	BannerStore   *store.BannerStore
	ContactStore  *store.ContactStore
	AuditStore    *store.AuditStore
	Cache         *cache.ResponseCache
	Auth          *Auth
	Posts         *Content
	News          *Content
	Services      *Content
	Categories    *Categories
	Team          *Team
	Banners       *Banners
	Contact       *Contact
	Media         *Media
	Users         *Users
	Public        *Public
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	contentStore := store.NewContentStore(db)
	categoryStore := store.NewCategoryStore(db)
	userStore := store.NewUserStore(db)
	mediaStore := store.NewMediaStore(db)
	teamStore := store.NewTeamStore(db)
	bannerStore := store.NewBannerStore(db)
	contactStore := store.NewContactStore(db)
	auditStore := store.NewAuditStore(db)

	auditLogger := audit.NewLogger(auditStore)
	responseCache := cache.NewResponseCache(vk, 1*time.Minute)

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Sessions:      sessions,
		ContentStore:  contentStore,
		CategoryStore: categoryStore,
		UserStore:     userStore,
		MediaStore:    mediaStore,
		TeamStore:     teamStore,
		BannerStore:   bannerStore,
		ContactStore:  contactStore,
		AuditStore:    auditStore,
		Cache:         responseCache,
		Auth:          NewAuth(sessions, userStore, auditLogger),
		Posts:         NewContent(models.ContentTypePost, contentStore, auditLogger, responseCache),
		News:          NewContent(models.ContentTypeNews, contentStore, auditLogger, responseCache),
		Services:      NewContent(models.ContentTypeService, contentStore, auditLogger, responseCache),
		Categories:    NewCategories(categoryStore, auditLogger, responseCache),
		Team:          NewTeam(teamStore, auditLogger, responseCache),
		Banners:       NewBanners(bannerStore, auditLogger, responseCache),
		Contact:       NewContact(contactStore, auditLogger, responseCache),
		Media:         NewMedia(mediaStore, nil, auditLogger),
		Users:         NewUsers(userStore, auditLogger),
		Public:        NewPublic(contentStore, teamStore, bannerStore, contactStore, mediaStore, nil, responseCache),
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for testing.
func testSession(userID uuid.UUID, email, role string) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test User",
		Role:        role,
		TwoFADone:   true,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withChiURLParamAndSession adds both chi URL param and session to a request.
func withChiURLParamAndSession(r *http.Request, key, value string, sess *session.Data) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	return r.WithContext(ctx)
}

// jsonRequest builds a request with a JSON body and an optional session.
func jsonRequest(t *testing.T, method, target string, body any, sess *session.Data) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	if sess != nil {
		r = r.WithContext(ctxWithSession(r.Context(), sess))
	}
	return r
}

// decodeBody parses a recorded JSON response body into a map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response body: %v (body: %s)", err, w.Body.String())
	}
	return out
}

// testUser creates (or reuses) a user with the given role for tests.
func testUser(t *testing.T, userStore *store.UserStore, email string, role models.Role) *models.User {
	t.Helper()

	existing, err := userStore.FindByEmail(email)
	if err != nil {
		t.Fatalf("find test user: %v", err)
	}
	if existing != nil {
		return existing
	}

	u, err := userStore.Create(email, "test-password-1", "Test User", role)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return u
}

// cleanContent removes test content by slug.
func cleanContent(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM content WHERE slug = $1", s)
	}
}

// cleanUsers removes test users by email.
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, e := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", e)
	}
}

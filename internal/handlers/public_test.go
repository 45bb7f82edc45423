// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"therapycms/internal/models"
)

func TestPublicDetailLocaleFallback(t *testing.T) {
	env := newTestEnv(t)

	cleanContent(t, env.DB, "locale-fallback-service")
	t.Cleanup(func() { cleanContent(t, env.DB, "locale-fallback-service") })

	titleEN := "Mental Health Care"
	_, err := env.ContentStore.Create(&models.Content{
		Type:    models.ContentTypeService,
		Title:   "Chăm sóc sức khỏe tinh thần",
		TitleEN: &titleEN,
		Slug:    "locale-fallback-service",
		Body:    "Nội dung tiếng Việt.",
		// BodyEN left nil; the English response falls back to Vietnamese.
		Status: models.ContentStatusPublished,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Vietnamese (default).
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/public/services/locale-fallback-service", nil)
	env.Public.ServiceDetail(w, withChiURLParam(r, "slug", "locale-fallback-service"))
	if w.Code != http.StatusOK {
		t.Fatalf("vi: status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["title"] != "Chăm sóc sức khỏe tinh thần" {
		t.Errorf("vi title = %q", body["title"])
	}

	// English: translated title, untranslated body falls back.
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api/public/services/locale-fallback-service?locale=en", nil)
	env.Public.ServiceDetail(w, withChiURLParam(r, "slug", "locale-fallback-service"))
	if w.Code != http.StatusOK {
		t.Fatalf("en: status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	if body["title"] != "Mental Health Care" {
		t.Errorf("en title = %q, want translated", body["title"])
	}
	bodyHTML, _ := body["body_html"].(string)
	if !strings.Contains(bodyHTML, "Nội dung tiếng Việt") {
		t.Errorf("en body_html = %q, want Vietnamese fallback", bodyHTML)
	}
}

func TestPublicDetailHidesDrafts(t *testing.T) {
	env := newTestEnv(t)

	cleanContent(t, env.DB, "hidden-draft-news")
	t.Cleanup(func() { cleanContent(t, env.DB, "hidden-draft-news") })

	_, err := env.ContentStore.Create(&models.Content{
		Type:   models.ContentTypeNews,
		Title:  "Hidden Draft News",
		Slug:   "hidden-draft-news",
		Body:   "x",
		Status: models.ContentStatusDraft,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/public/news/hidden-draft-news", nil)
	env.Public.NewsDetail(w, withChiURLParam(r, "slug", "hidden-draft-news"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unpublished content", w.Code)
	}
}

func TestPublicListServedFromCache(t *testing.T) {
	env := newTestEnv(t)

	cleanContent(t, env.DB, "cached-list-service")
	t.Cleanup(func() { cleanContent(t, env.DB, "cached-list-service") })

	created, err := env.ContentStore.Create(&models.Content{
		Type:   models.ContentTypeService,
		Title:  "Cached List Service",
		Slug:   "cached-list-service",
		Body:   "x",
		Status: models.ContentStatusPublished,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	target := "/api/public/services?page=1&limit=50"

	w := httptest.NewRecorder()
	env.Public.ListServices(w, httptest.NewRequest(http.MethodGet, target, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "cached-list-service") {
		t.Fatalf("first response missing item: %s", w.Body.String())
	}

	// Delete the row directly; the cached response must still serve it
	// until invalidation.
	if err := env.ContentStore.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	w = httptest.NewRecorder()
	env.Public.ListServices(w, httptest.NewRequest(http.MethodGet, target, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("second request: status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "cached-list-service") {
		t.Error("second response should come from the cache")
	}

	// Invalidation empties the list.
	env.Cache.InvalidateAll(context.Background())
	w = httptest.NewRecorder()
	env.Public.ListServices(w, httptest.NewRequest(http.MethodGet, target, nil))
	if strings.Contains(w.Body.String(), "cached-list-service") {
		t.Error("response after invalidation should rebuild from the database")
	}
}

func TestPublicNewsListPinnedFirst(t *testing.T) {
	env := newTestEnv(t)

	slugs := []string{"pinned-order-a", "pinned-order-b"}
	cleanContent(t, env.DB, slugs...)
	t.Cleanup(func() { cleanContent(t, env.DB, slugs...) })

	for _, c := range []*models.Content{
		{Type: models.ContentTypeNews, Title: "Pinned Order A", Slug: "pinned-order-a", Body: "x", Status: models.ContentStatusPublished},
		{Type: models.ContentTypeNews, Title: "Pinned Order B", Slug: "pinned-order-b", Body: "x", Status: models.ContentStatusPublished, Pinned: true},
	} {
		if _, err := env.ContentStore.Create(c); err != nil {
			t.Fatalf("create %s: %v", c.Slug, err)
		}
	}

	w := httptest.NewRecorder()
	env.Public.ListNews(w, httptest.NewRequest(http.MethodGet, "/api/public/news?limit=100", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	raw := w.Body.String()
	posA := strings.Index(raw, "pinned-order-a")
	posB := strings.Index(raw, "pinned-order-b")
	if posA < 0 || posB < 0 {
		t.Fatalf("both items should be listed: %s", raw)
	}
	if posB > posA {
		t.Error("pinned item should sort before unpinned")
	}
}

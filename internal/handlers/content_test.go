// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"therapycms/internal/models"
)

func TestContentCreateGeneratesVietnameseSlug(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	cleanContent(t, env.DB, "cham-soc-suc-khoe-tinh-than")
	t.Cleanup(func() { cleanContent(t, env.DB, "cham-soc-suc-khoe-tinh-than") })

	w := httptest.NewRecorder()
	r := jsonRequest(t, http.MethodPost, "/api/services", map[string]any{
		"title": "Chăm sóc sức khỏe tinh thần",
		"body":  "Nội dung dịch vụ.",
	}, sess)
	env.Services.Create(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["slug"] != "cham-soc-suc-khoe-tinh-than" {
		t.Errorf("slug = %q, want cham-soc-suc-khoe-tinh-than", body["slug"])
	}
	if body["status"] != string(models.ContentStatusDraft) {
		t.Errorf("status = %q, want DRAFT by default", body["status"])
	}
}

func TestContentCreateDuplicateSlugConflict(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	cleanContent(t, env.DB, "duplicate-slug-test")
	t.Cleanup(func() { cleanContent(t, env.DB, "duplicate-slug-test") })

	form := map[string]any{"title": "Duplicate Slug Test", "body": "x"}

	w := httptest.NewRecorder()
	env.News.Create(w, jsonRequest(t, http.MethodPost, "/api/news", form, sess))
	if w.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	env.News.Create(w, jsonRequest(t, http.MethodPost, "/api/news", form, sess))
	if w.Code != http.StatusConflict {
		t.Fatalf("second create: status = %d, want 409 (body: %s)", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["error"] != "slug already exists" {
		t.Errorf("error = %q, want slug conflict message", body["error"])
	}
}

func TestContentCreateSameSlugDifferentType(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	cleanContent(t, env.DB, "shared-slug-across-types")
	t.Cleanup(func() { cleanContent(t, env.DB, "shared-slug-across-types") })

	form := map[string]any{"title": "Shared Slug Across Types", "body": "x"}

	w := httptest.NewRecorder()
	env.News.Create(w, jsonRequest(t, http.MethodPost, "/api/news", form, sess))
	if w.Code != http.StatusCreated {
		t.Fatalf("news create: status = %d, want 201", w.Code)
	}

	// Slug uniqueness is scoped per type, so a service may reuse it.
	w = httptest.NewRecorder()
	env.Services.Create(w, jsonRequest(t, http.MethodPost, "/api/services", form, sess))
	if w.Code != http.StatusCreated {
		t.Fatalf("service create: status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}
}

func TestContentCreateEmptySlugRejected(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	w := httptest.NewRecorder()
	r := jsonRequest(t, http.MethodPost, "/api/news", map[string]any{
		"title": "!!! ???",
		"body":  "x",
	}, sess)
	env.News.Create(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body: %s)", w.Code, w.Body.String())
	}
}

func TestContentEditorCannotPublish(t *testing.T) {
	env := newTestEnv(t)
	editor := testUser(t, env.UserStore, "editor-handlers@test.local", models.RoleEditor)
	sess := testSession(editor.ID, editor.Email, string(editor.Role))

	w := httptest.NewRecorder()
	r := jsonRequest(t, http.MethodPost, "/api/news", map[string]any{
		"title":  "Editor Publish Attempt",
		"body":   "x",
		"status": string(models.ContentStatusPublished),
	}, sess)
	env.News.Create(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 (body: %s)", w.Code, w.Body.String())
	}

	// Editors may still submit for review.
	cleanContent(t, env.DB, "editor-pending-review")
	t.Cleanup(func() { cleanContent(t, env.DB, "editor-pending-review") })

	w = httptest.NewRecorder()
	r = jsonRequest(t, http.MethodPost, "/api/news", map[string]any{
		"title":  "Editor Pending Review",
		"body":   "x",
		"status": string(models.ContentStatusPendingReview),
	}, sess)
	env.News.Create(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("pending review create: status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}
}

func TestContentStatusTransitionStampsPublishedAt(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	cleanContent(t, env.DB, "status-transition-test")
	t.Cleanup(func() { cleanContent(t, env.DB, "status-transition-test") })

	created, err := env.ContentStore.Create(&models.Content{
		Type:   models.ContentTypeNews,
		Title:  "Status Transition Test",
		Slug:   "status-transition-test",
		Body:   "x",
		Status: models.ContentStatusDraft,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.PublishedAt != nil {
		t.Fatal("draft should not have published_at")
	}

	w := httptest.NewRecorder()
	r := jsonRequest(t, http.MethodPatch, "/api/news/"+created.ID.String()+"/status", map[string]any{
		"status": string(models.ContentStatusPublished),
	}, nil)
	env.News.UpdateStatus(w, withChiURLParamAndSession(r, "id", created.ID.String(), sess))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["status"] != string(models.ContentStatusPublished) {
		t.Errorf("status = %q, want PUBLISHED", body["status"])
	}
	if body["published_at"] == nil {
		t.Error("published_at should be stamped on first publish")
	}
}

func TestContentScheduledStatusOnlyForPosts(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	cleanContent(t, env.DB, "scheduled-status-test")
	t.Cleanup(func() { cleanContent(t, env.DB, "scheduled-status-test") })

	created, err := env.ContentStore.Create(&models.Content{
		Type:   models.ContentTypeNews,
		Title:  "Scheduled Status Test",
		Slug:   "scheduled-status-test",
		Body:   "x",
		Status: models.ContentStatusDraft,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w := httptest.NewRecorder()
	r := jsonRequest(t, http.MethodPatch, "/api/news/"+created.ID.String()+"/status", map[string]any{
		"status": string(models.ContentStatusScheduled),
	}, nil)
	env.News.UpdateStatus(w, withChiURLParamAndSession(r, "id", created.ID.String(), sess))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body: %s)", w.Code, w.Body.String())
	}
}

func TestContentHomepageCapNews(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	slugs := []string{"cap-news-1", "cap-news-2", "cap-news-3", "cap-news-4"}
	cleanContent(t, env.DB, slugs...)
	t.Cleanup(func() { cleanContent(t, env.DB, slugs...) })

	titles := []string{"Cap News 1", "Cap News 2", "Cap News 3"}
	for _, title := range titles {
		w := httptest.NewRecorder()
		r := jsonRequest(t, http.MethodPost, "/api/news", map[string]any{
			"title":            title,
			"body":             "x",
			"show_on_homepage": true,
		}, sess)
		env.News.Create(w, r)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %q: status = %d, want 201 (body: %s)", title, w.Code, w.Body.String())
		}
	}

	w := httptest.NewRecorder()
	r := jsonRequest(t, http.MethodPost, "/api/news", map[string]any{
		"title":            "Cap News 4",
		"body":             "x",
		"show_on_homepage": true,
	}, sess)
	env.News.Create(w, r)
	if w.Code != http.StatusConflict {
		t.Fatalf("fourth flagged news: status = %d, want 409 (body: %s)", w.Code, w.Body.String())
	}

	// Unflagged items are not capped.
	w = httptest.NewRecorder()
	r = jsonRequest(t, http.MethodPost, "/api/news", map[string]any{
		"title": "Cap News 4",
		"body":  "x",
	}, sess)
	env.News.Create(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("unflagged news: status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}
}

func TestContentGetWrongTypeNotFound(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	cleanContent(t, env.DB, "wrong-type-test")
	t.Cleanup(func() { cleanContent(t, env.DB, "wrong-type-test") })

	created, err := env.ContentStore.Create(&models.Content{
		Type:   models.ContentTypeNews,
		Title:  "Wrong Type Test",
		Slug:   "wrong-type-test",
		Body:   "x",
		Status: models.ContentStatusDraft,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A news item fetched through the posts handler is invisible.
	w := httptest.NewRecorder()
	r := jsonRequest(t, http.MethodGet, "/api/posts/"+created.ID.String(), nil, nil)
	env.Posts.Get(w, withChiURLParamAndSession(r, "id", created.ID.String(), sess))
	if w.Code != http.StatusNotFound {
		t.Fatalf("posts handler: status = %d, want 404", w.Code)
	}

	w = httptest.NewRecorder()
	r = jsonRequest(t, http.MethodGet, "/api/news/"+created.ID.String(), nil, nil)
	env.News.Get(w, withChiURLParamAndSession(r, "id", created.ID.String(), sess))
	if w.Code != http.StatusOK {
		t.Fatalf("news handler: status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
}

func TestContentUpdatePreservesPublishedAt(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	cleanContent(t, env.DB, "update-preserves-published", "update-preserves-published-v2")
	t.Cleanup(func() {
		cleanContent(t, env.DB, "update-preserves-published", "update-preserves-published-v2")
	})

	created, err := env.ContentStore.Create(&models.Content{
		Type:   models.ContentTypeService,
		Title:  "Update Preserves Published",
		Slug:   "update-preserves-published",
		Body:   "x",
		Status: models.ContentStatusPublished,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.PublishedAt == nil {
		t.Fatal("published item should have published_at")
	}

	w := httptest.NewRecorder()
	r := jsonRequest(t, http.MethodPut, "/api/services/"+created.ID.String(), map[string]any{
		"title":  "Update Preserves Published V2",
		"body":   "updated",
		"status": string(models.ContentStatusPublished),
	}, nil)
	env.Services.Update(w, withChiURLParamAndSession(r, "id", created.ID.String(), sess))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["published_at"] == nil {
		t.Error("published_at should survive updates")
	}
	if body["slug"] != "update-preserves-published-v2" {
		t.Errorf("slug = %q, want regenerated from new title", body["slug"])
	}
}

// findAuditEntry returns the newest audit entry matching the entity,
// entity ID, and action, or nil.
func findAuditEntry(t *testing.T, env *testEnv, entity, entityID, action string) *models.AuditLogEntry {
	t.Helper()

	entries, _, err := env.AuditStore.List(entity, 1, 100)
	if err != nil {
		t.Fatalf("list audit entries: %v", err)
	}
	for i := range entries {
		e := &entries[i]
		if e.Action == action && e.EntityID != nil && *e.EntityID == entityID {
			return e
		}
	}
	return nil
}

func TestContentStatusTransitionAppendsAuditEntry(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	cleanContent(t, env.DB, "audit-patch-transition")
	t.Cleanup(func() { cleanContent(t, env.DB, "audit-patch-transition") })

	created, err := env.ContentStore.Create(&models.Content{
		Type:   models.ContentTypeService,
		Title:  "Audit Patch Transition",
		Slug:   "audit-patch-transition",
		Body:   "x",
		Status: models.ContentStatusDraft,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w := httptest.NewRecorder()
	r := jsonRequest(t, http.MethodPatch, "/api/services/"+created.ID.String()+"/status", map[string]any{
		"status": string(models.ContentStatusPublished),
	}, nil)
	env.Services.UpdateStatus(w, withChiURLParamAndSession(r, "id", created.ID.String(), sess))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	entry := findAuditEntry(t, env, "service", created.ID.String(), models.AuditActionUpdateStatus)
	if entry == nil {
		t.Fatal("status transition should append an UPDATE_STATUS audit entry")
	}
	if entry.Details["from"] != string(models.ContentStatusDraft) || entry.Details["to"] != string(models.ContentStatusPublished) {
		t.Errorf("details = %v, want from DRAFT to PUBLISHED", entry.Details)
	}
	if entry.UserID == nil || *entry.UserID != admin.ID {
		t.Errorf("user_id = %v, want the acting admin", entry.UserID)
	}
}

func TestContentUpdateRecordsStatusChange(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	cleanContent(t, env.DB, "audit-put-transition")
	t.Cleanup(func() { cleanContent(t, env.DB, "audit-put-transition") })

	created, err := env.ContentStore.Create(&models.Content{
		Type:   models.ContentTypeNews,
		Title:  "Audit Put Transition",
		Slug:   "audit-put-transition",
		Body:   "x",
		Status: models.ContentStatusDraft,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A full update carrying a status change records the transition with
	// the previous and new status, same as the status endpoint.
	w := httptest.NewRecorder()
	r := jsonRequest(t, http.MethodPut, "/api/news/"+created.ID.String(), map[string]any{
		"title":  "Audit Put Transition",
		"slug":   "audit-put-transition",
		"body":   "x",
		"status": string(models.ContentStatusPublished),
	}, nil)
	env.News.Update(w, withChiURLParamAndSession(r, "id", created.ID.String(), sess))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	entry := findAuditEntry(t, env, "news", created.ID.String(), models.AuditActionUpdateStatus)
	if entry == nil {
		t.Fatal("update with a status change should append an UPDATE_STATUS audit entry")
	}
	if entry.Details["from"] != string(models.ContentStatusDraft) || entry.Details["to"] != string(models.ContentStatusPublished) {
		t.Errorf("details = %v, want from DRAFT to PUBLISHED", entry.Details)
	}

	// A second update without a status change must not add another one.
	w = httptest.NewRecorder()
	r = jsonRequest(t, http.MethodPut, "/api/news/"+created.ID.String(), map[string]any{
		"title":  "Audit Put Transition Renamed",
		"slug":   "audit-put-transition",
		"body":   "y",
		"status": string(models.ContentStatusPublished),
	}, nil)
	env.News.Update(w, withChiURLParamAndSession(r, "id", created.ID.String(), sess))
	if w.Code != http.StatusOK {
		t.Fatalf("second update: status = %d (body: %s)", w.Code, w.Body.String())
	}

	entries, _, err := env.AuditStore.List("news", 1, 100)
	if err != nil {
		t.Fatalf("list audit entries: %v", err)
	}
	count := 0
	for _, e := range entries {
		if e.Action == models.AuditActionUpdateStatus && e.EntityID != nil && *e.EntityID == created.ID.String() {
			count++
		}
	}
	if count != 1 {
		t.Errorf("UPDATE_STATUS entries = %d, want exactly 1", count)
	}
}

func TestContentDelete(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	created, err := env.ContentStore.Create(&models.Content{
		Type:   models.ContentTypeNews,
		Title:  "Delete Me",
		Slug:   "delete-me-handler-test",
		Body:   "x",
		Status: models.ContentStatusDraft,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w := httptest.NewRecorder()
	r := jsonRequest(t, http.MethodDelete, "/api/news/"+created.ID.String(), nil, nil)
	env.News.Delete(w, withChiURLParamAndSession(r, "id", created.ID.String(), sess))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204 (body: %s)", w.Code, w.Body.String())
	}

	got, err := env.ContentStore.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find after delete: %v", err)
	}
	if got != nil {
		t.Error("item should be gone after delete")
	}
}

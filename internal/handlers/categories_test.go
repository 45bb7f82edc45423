// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"therapycms/internal/models"
)

func cleanCategories(t *testing.T, env *testEnv, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		env.DB.Exec("DELETE FROM categories WHERE slug = $1", s)
	}
}

func TestCategoriesCreateGeneratesSlug(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	cleanCategories(t, env, "tam-ly-tre-em")
	t.Cleanup(func() { cleanCategories(t, env, "tam-ly-tre-em") })

	w := httptest.NewRecorder()
	env.Categories.Create(w, jsonRequest(t, http.MethodPost, "/api/categories", map[string]any{
		"name": "Tâm lý trẻ em",
	}, sess))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["slug"] != "tam-ly-tre-em" {
		t.Errorf("slug = %q, want tam-ly-tre-em", body["slug"])
	}
}

func TestCategoriesDeleteInUseConflict(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	cleanContent(t, env.DB, "category-in-use-news")
	cleanCategories(t, env, "category-in-use")
	t.Cleanup(func() {
		cleanContent(t, env.DB, "category-in-use-news")
		cleanCategories(t, env, "category-in-use")
	})

	cat, err := env.CategoryStore.Create(&models.Category{
		Name: "Category In Use",
		Slug: "category-in-use",
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	if _, err := env.ContentStore.Create(&models.Content{
		Type:       models.ContentTypeNews,
		Title:      "Category In Use News",
		Slug:       "category-in-use-news",
		Body:       "x",
		Status:     models.ContentStatusDraft,
		CategoryID: &cat.ID,
	}); err != nil {
		t.Fatalf("create news: %v", err)
	}

	w := httptest.NewRecorder()
	r := jsonRequest(t, http.MethodDelete, "/api/categories/"+cat.ID.String(), nil, nil)
	env.Categories.Delete(w, withChiURLParamAndSession(r, "id", cat.ID.String(), sess))
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 while referenced (body: %s)", w.Code, w.Body.String())
	}

	// After the reference is gone the delete succeeds.
	cleanContent(t, env.DB, "category-in-use-news")
	w = httptest.NewRecorder()
	r = jsonRequest(t, http.MethodDelete, "/api/categories/"+cat.ID.String(), nil, nil)
	env.Categories.Delete(w, withChiURLParamAndSession(r, "id", cat.ID.String(), sess))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204 (body: %s)", w.Code, w.Body.String())
	}
}

func TestCategoriesDeleteUnknownNotFound(t *testing.T) {
	env := newTestEnv(t)
	admin := testUser(t, env.UserStore, "admin-handlers@test.local", models.RoleAdmin)
	sess := testSession(admin.ID, admin.Email, string(admin.Role))

	id := uuid.New()
	w := httptest.NewRecorder()
	r := jsonRequest(t, http.MethodDelete, "/api/categories/"+id.String(), nil, nil)
	env.Categories.Delete(w, withChiURLParamAndSession(r, "id", id.String(), sess))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func TestContentStatusValidFor(t *testing.T) {
	tests := []struct {
		status ContentStatus
		typ    ContentType
		want   bool
	}{
		{ContentStatusDraft, ContentTypePost, true},
		{ContentStatusDraft, ContentTypeNews, true},
		{ContentStatusDraft, ContentTypeService, true},
		{ContentStatusPendingReview, ContentTypeNews, true},
		{ContentStatusPublished, ContentTypeService, true},
		{ContentStatusArchived, ContentTypePost, true},
		{ContentStatusScheduled, ContentTypePost, true},
		{ContentStatusScheduled, ContentTypeNews, false},
		{ContentStatusScheduled, ContentTypeService, false},
		{ContentStatus("BOGUS"), ContentTypePost, false},
		{ContentStatus(""), ContentTypeNews, false},
	}

	for _, tt := range tests {
		if got := tt.status.ValidFor(tt.typ); got != tt.want {
			t.Errorf("%s.ValidFor(%s) = %v, want %v", tt.status, tt.typ, got, tt.want)
		}
	}
}

func TestContentTypeHomepageCap(t *testing.T) {
	if got := ContentTypeNews.HomepageCap(); got != 3 {
		t.Errorf("news cap = %d, want 3", got)
	}
	if got := ContentTypeService.HomepageCap(); got != 4 {
		t.Errorf("service cap = %d, want 4", got)
	}
	if got := ContentTypePost.HomepageCap(); got != 0 {
		t.Errorf("post cap = %d, want 0 (uncapped)", got)
	}
}

func TestContentTypeValid(t *testing.T) {
	for _, typ := range []ContentType{ContentTypePost, ContentTypeNews, ContentTypeService} {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if ContentType("page").Valid() {
		t.Error("unknown type should be invalid")
	}
}

func TestContentIsPublished(t *testing.T) {
	c := &Content{Status: ContentStatusPublished}
	if !c.IsPublished() {
		t.Error("published content should report IsPublished")
	}
	c.Status = ContentStatusArchived
	if c.IsPublished() {
		t.Error("archived content should not report IsPublished")
	}
}

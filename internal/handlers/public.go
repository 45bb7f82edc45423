// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"therapycms/internal/cache"
	"therapycms/internal/i18n"
	"therapycms/internal/markdown"
	"therapycms/internal/models"
	"therapycms/internal/pagination"
	"therapycms/internal/storage"
	"therapycms/internal/store"
)

// Public serves the anonymous localized endpoints. Every response is
// resolved to one locale (?locale=vi|en) and cached in Valkey per
// path+locale.
type Public struct {
	contentStore *store.ContentStore
	teamStore    *store.TeamStore
	bannerStore  *store.BannerStore
	contactStore *store.ContactStore
	mediaStore   *store.MediaStore
	storage      *storage.Client
	cache        *cache.ResponseCache
}

// NewPublic creates the public handler group.
func NewPublic(
	contentStore *store.ContentStore,
	teamStore *store.TeamStore,
	bannerStore *store.BannerStore,
	contactStore *store.ContactStore,
	mediaStore *store.MediaStore,
	storageClient *storage.Client,
	responseCache *cache.ResponseCache,
) *Public {
	return &Public{
		contentStore: contentStore,
		teamStore:    teamStore,
		bannerStore:  bannerStore,
		contactStore: contactStore,
		mediaStore:   mediaStore,
		storage:      storageClient,
		cache:        responseCache,
	}
}

// contentView is the localized public projection of a content item.
type contentView struct {
	ID               uuid.UUID   `json:"id"`
	Title            string      `json:"title"`
	Slug             string      `json:"slug"`
	ShortDescription *string     `json:"short_description,omitempty"`
	BodyHTML         string      `json:"body_html,omitempty"`
	Pinned           bool        `json:"pinned,omitempty"`
	CategoryID       *uuid.UUID  `json:"category_id,omitempty"`
	CategoryIDs      []uuid.UUID `json:"category_ids,omitempty"`
	FeatureImageURL  string      `json:"feature_image_url,omitempty"`
	MetaTitle        *string     `json:"meta_title,omitempty"`
	MetaDescription  *string     `json:"meta_description,omitempty"`
	MetaKeywords     *string     `json:"meta_keywords,omitempty"`
	PublishedAt      *time.Time  `json:"published_at,omitempty"`
}

// teamView is the localized public projection of a team member.
type teamView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	ImageURL    string    `json:"image_url,omitempty"`
}

// contactView is the localized public projection of the contact record.
type contactView struct {
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	Address         string  `json:"address"`
	BusinessHours   *string `json:"business_hours,omitempty"`
	FacebookURL     *string `json:"facebook_url,omitempty"`
	ZaloURL         *string `json:"zalo_url,omitempty"`
	YoutubeURL      *string `json:"youtube_url,omitempty"`
	AppointmentLink *string `json:"appointment_link,omitempty"`
}

// bannerView is the public projection of an active banner.
type bannerView struct {
	Type     models.BannerType `json:"type"`
	Link     *string           `json:"link,omitempty"`
	ImageURL string            `json:"image_url,omitempty"`
}

// serve resolves the locale, consults the response cache, and falls back
// to build() on a miss. Build errors return 500 without caching.
func (h *Public) serve(w http.ResponseWriter, r *http.Request, build func(locale i18n.Locale) (any, error)) {
	locale := i18n.Parse(r.URL.Query().Get("locale"))

	cacheKey := cache.Key(r.URL.RequestURI(), string(locale))
	if body, ok := h.cache.Get(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
		return
	}

	payload, err := build(locale)
	if err != nil {
		slog.Error("public endpoint failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if payload == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	body := mustMarshal(payload)
	h.cache.Set(r.Context(), cacheKey, body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Home returns the homepage payload: active banners, the flagged news and
// services, and the contact block.
func (h *Public) Home(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(locale i18n.Locale) (any, error) {
		news, err := h.contentStore.ListHomepage(models.ContentTypeNews)
		if err != nil {
			return nil, err
		}
		services, err := h.contentStore.ListHomepage(models.ContentTypeService)
		if err != nil {
			return nil, err
		}
		banners, err := h.bannerStore.List(true)
		if err != nil {
			return nil, err
		}
		members, err := h.teamStore.List(true)
		if err != nil {
			return nil, err
		}
		contact, err := h.contactStore.Get()
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"banners":  h.bannerViews(banners),
			"news":     h.contentViews(locale, news, false),
			"services": h.contentViews(locale, services, false),
			"team":     h.teamViews(locale, members),
		}
		if contact != nil {
			payload["contact"] = h.contactView(locale, contact)
		}
		return payload, nil
	})
}

// ListNews returns one page of published news, pinned items first.
func (h *Public) ListNews(w http.ResponseWriter, r *http.Request) {
	h.listContent(w, r, models.ContentTypeNews)
}

// ListServices returns one page of published services.
func (h *Public) ListServices(w http.ResponseWriter, r *http.Request) {
	h.listContent(w, r, models.ContentTypeService)
}

// ListPosts returns one page of published posts.
func (h *Public) ListPosts(w http.ResponseWriter, r *http.Request) {
	h.listContent(w, r, models.ContentTypePost)
}

func (h *Public) listContent(w http.ResponseWriter, r *http.Request, contentType models.ContentType) {
	page, limit := pageParams(r, 10)

	h.serve(w, r, func(locale i18n.Locale) (any, error) {
		items, total, err := h.contentStore.ListPublished(contentType, page, limit)
		if err != nil {
			return nil, err
		}

		meta := pagination.NewMeta(total, page, limit)
		return map[string]any{
			"items":      h.contentViews(locale, items, false),
			"meta":       meta,
			"pageWindow": pagination.Window(page, meta.TotalPages),
		}, nil
	})
}

// NewsDetail returns one published news item by slug with rendered HTML.
func (h *Public) NewsDetail(w http.ResponseWriter, r *http.Request) {
	h.contentDetail(w, r, models.ContentTypeNews)
}

// ServiceDetail returns one published service by slug with rendered HTML.
func (h *Public) ServiceDetail(w http.ResponseWriter, r *http.Request) {
	h.contentDetail(w, r, models.ContentTypeService)
}

// PostDetail returns one published post by slug with rendered HTML.
func (h *Public) PostDetail(w http.ResponseWriter, r *http.Request) {
	h.contentDetail(w, r, models.ContentTypePost)
}

func (h *Public) contentDetail(w http.ResponseWriter, r *http.Request, contentType models.ContentType) {
	slug := chi.URLParam(r, "slug")

	h.serve(w, r, func(locale i18n.Locale) (any, error) {
		item, err := h.contentStore.FindPublishedBySlug(contentType, slug)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, nil
		}

		view := h.contentView(locale, item, true)
		return view, nil
	})
}

// Team returns active team members ordered for display.
func (h *Public) Team(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(locale i18n.Locale) (any, error) {
		members, err := h.teamStore.List(true)
		if err != nil {
			return nil, err
		}
		return map[string]any{"items": h.teamViews(locale, members)}, nil
	})
}

// Contact returns the localized contact block.
func (h *Public) Contact(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(locale i18n.Locale) (any, error) {
		contact, err := h.contactStore.Get()
		if err != nil {
			return nil, err
		}
		if contact == nil {
			return nil, nil
		}
		return h.contactView(locale, contact), nil
	})
}

// Banners returns all active banners.
func (h *Public) Banners(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(locale i18n.Locale) (any, error) {
		banners, err := h.bannerStore.List(true)
		if err != nil {
			return nil, err
		}
		return map[string]any{"items": h.bannerViews(banners)}, nil
	})
}

func (h *Public) contentViews(locale i18n.Locale, items []models.Content, withBody bool) []contentView {
	views := make([]contentView, 0, len(items))
	for i := range items {
		views = append(views, *h.contentView(locale, &items[i], withBody))
	}
	return views
}

func (h *Public) contentView(locale i18n.Locale, c *models.Content, withBody bool) *contentView {
	v := &contentView{
		ID:               c.ID,
		Title:            i18n.Field(locale, c.Title, c.TitleEN),
		Slug:             c.Slug,
		ShortDescription: i18n.OptionalField(locale, c.ShortDescription, c.ShortDescriptionEN),
		Pinned:           c.Pinned,
		CategoryID:       c.CategoryID,
		CategoryIDs:      c.CategoryIDs,
		MetaTitle:        i18n.OptionalField(locale, c.MetaTitle, c.MetaTitleEN),
		MetaDescription:  i18n.OptionalField(locale, c.MetaDescription, c.MetaDescriptionEN),
		MetaKeywords:     i18n.OptionalField(locale, c.MetaKeywords, c.MetaKeywordsEN),
		PublishedAt:      c.PublishedAt,
	}

	imageID := c.FeatureImageID
	if locale.IsEnglish() && c.FeatureImageENID != nil {
		imageID = c.FeatureImageENID
	}
	v.FeatureImageURL = h.mediaURL(imageID)

	if withBody {
		body := i18n.Field(locale, c.Body, c.BodyEN)
		html, err := markdown.ToHTML(body)
		if err != nil {
			slog.Warn("markdown render failed", "id", c.ID, "error", err)
			html = body
		}
		v.BodyHTML = html
	}
	return v
}

func (h *Public) teamViews(locale i18n.Locale, members []models.TeamMember) []teamView {
	views := make([]teamView, 0, len(members))
	for _, m := range members {
		v := teamView{
			ID:          m.ID,
			Name:        i18n.Field(locale, m.Name, m.NameEN),
			Title:       i18n.Field(locale, m.Title, m.TitleEN),
			Description: i18n.OptionalField(locale, m.Description, m.DescriptionEN),
			SortOrder:   m.SortOrder,
		}
		imageID := m.ImageID
		if locale.IsEnglish() && m.ImageENID != nil {
			imageID = m.ImageENID
		}
		v.ImageURL = h.mediaURL(imageID)
		views = append(views, v)
	}
	return views
}

func (h *Public) contactView(locale i18n.Locale, c *models.Contact) *contactView {
	return &contactView{
		Phone:           c.Phone,
		Email:           c.Email,
		Address:         i18n.Field(locale, c.Address, c.AddressEN),
		BusinessHours:   i18n.OptionalField(locale, c.BusinessHours, c.BusinessHoursEN),
		FacebookURL:     c.FacebookURL,
		ZaloURL:         c.ZaloURL,
		YoutubeURL:      c.YoutubeURL,
		AppointmentLink: c.AppointmentLink,
	}
}

func (h *Public) bannerViews(banners []models.Banner) []bannerView {
	views := make([]bannerView, 0, len(banners))
	for _, b := range banners {
		views = append(views, bannerView{
			Type:     b.Type,
			Link:     b.Link,
			ImageURL: h.mediaURL(b.ImageID),
		})
	}
	return views
}

// mediaURL resolves a media reference to its public URL. Returns "" when
// the reference is nil, the row is gone, or storage is unconfigured.
func (h *Public) mediaURL(id *uuid.UUID) string {
	if id == nil || h.storage == nil {
		return ""
	}
	m, err := h.mediaStore.FindByID(*id)
	if err != nil || m == nil {
		return ""
	}
	return h.storage.FileURL(m.S3Key)
}

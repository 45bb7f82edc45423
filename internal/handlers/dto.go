// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"therapycms/internal/models"
)

// SEO field limits. Search engines truncate beyond these.
const (
	maxMetaTitleLen = 65
	maxMetaDescLen  = 155
	maxTitleLen     = 300
	maxTeamDescLen  = 300
)

// contentForm is the request body for creating or updating a post, news
// item, or service. The entity type comes from the route, not the body.
type contentForm struct {
	Title              string      `json:"title"`
	TitleEN            *string     `json:"title_en,omitempty"`
	Slug               string      `json:"slug,omitempty"`
	Body               string      `json:"body"`
	BodyEN             *string     `json:"body_en,omitempty"`
	ShortDescription   *string     `json:"short_description,omitempty"`
	ShortDescriptionEN *string     `json:"short_description_en,omitempty"`
	Status             string      `json:"status,omitempty"`
	ShowOnHomepage     bool        `json:"show_on_homepage"`
	Pinned             bool        `json:"pinned"`
	CategoryID         *uuid.UUID  `json:"category_id,omitempty"`
	CategoryIDs        []uuid.UUID `json:"category_ids,omitempty"`
	FeatureImageID     *uuid.UUID  `json:"feature_image_id,omitempty"`
	FeatureImageENID   *uuid.UUID  `json:"feature_image_en_id,omitempty"`
	MetaTitle          *string     `json:"meta_title,omitempty"`
	MetaTitleEN        *string     `json:"meta_title_en,omitempty"`
	MetaDescription    *string     `json:"meta_description,omitempty"`
	MetaDescriptionEN  *string     `json:"meta_description_en,omitempty"`
	MetaKeywords       *string     `json:"meta_keywords,omitempty"`
	MetaKeywordsEN     *string     `json:"meta_keywords_en,omitempty"`
}

// Validate checks field lengths and the status value for the given type.
func (f contentForm) Validate(contentType models.ContentType) error {
	statuses := []any{
		string(models.ContentStatusDraft),
		string(models.ContentStatusPendingReview),
		string(models.ContentStatusPublished),
		string(models.ContentStatusArchived),
	}
	if contentType == models.ContentTypePost {
		statuses = append(statuses, string(models.ContentStatusScheduled))
	}

	return validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, maxTitleLen),
		),
		validation.Field(&f.TitleEN,
			validation.When(f.TitleEN != nil, validation.RuneLength(0, maxTitleLen)),
		),
		validation.Field(&f.Status,
			validation.When(f.Status != "", validation.In(statuses...).Error("invalid status for this content type")),
		),
		validation.Field(&f.MetaTitle,
			validation.When(f.MetaTitle != nil, validation.RuneLength(0, maxMetaTitleLen).Error("meta title exceeds 65 characters")),
		),
		validation.Field(&f.MetaTitleEN,
			validation.When(f.MetaTitleEN != nil, validation.RuneLength(0, maxMetaTitleLen).Error("meta title exceeds 65 characters")),
		),
		validation.Field(&f.MetaDescription,
			validation.When(f.MetaDescription != nil, validation.RuneLength(0, maxMetaDescLen).Error("meta description exceeds 155 characters")),
		),
		validation.Field(&f.MetaDescriptionEN,
			validation.When(f.MetaDescriptionEN != nil, validation.RuneLength(0, maxMetaDescLen).Error("meta description exceeds 155 characters")),
		),
	)
}

// statusForm is the request body for the status transition endpoint.
type statusForm struct {
	Status string `json:"status"`
}

func (f statusForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Status, validation.Required.Error("status is required")),
	)
}

// categoryForm is the request body for creating or updating a category.
type categoryForm struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (f categoryForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, 100),
		),
	)
}

// teamForm is the request body for creating or updating a team member.
type teamForm struct {
	Name          string     `json:"name"`
	NameEN        *string    `json:"name_en,omitempty"`
	Title         string     `json:"title"`
	TitleEN       *string    `json:"title_en,omitempty"`
	Description   *string    `json:"description,omitempty"`
	DescriptionEN *string    `json:"description_en,omitempty"`
	SortOrder     int        `json:"sort_order"`
	Status        string     `json:"status,omitempty"`
	ImageID       *uuid.UUID `json:"image_id,omitempty"`
	ImageENID     *uuid.UUID `json:"image_en_id,omitempty"`
}

func (f teamForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, 150),
		),
		validation.Field(&f.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, 150),
		),
		validation.Field(&f.Description,
			validation.When(f.Description != nil, validation.RuneLength(0, maxTeamDescLen).Error("description exceeds 300 characters")),
		),
		validation.Field(&f.DescriptionEN,
			validation.When(f.DescriptionEN != nil, validation.RuneLength(0, maxTeamDescLen).Error("description exceeds 300 characters")),
		),
		validation.Field(&f.Status,
			validation.When(f.Status != "", validation.In(
				string(models.MemberStatusActive), string(models.MemberStatusInactive),
			)),
		),
	)
}

// bannerForm is the request body for creating or updating a banner.
type bannerForm struct {
	Type    string     `json:"type"`
	Link    *string    `json:"link,omitempty"`
	Status  string     `json:"status,omitempty"`
	ImageID *uuid.UUID `json:"image_id,omitempty"`
}

func (f bannerForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Type,
			validation.Required.Error("type is required"),
			validation.In(
				string(models.BannerTypeHomepage), string(models.BannerTypeService),
				string(models.BannerTypeNews), string(models.BannerTypeAbout),
			).Error("invalid banner type"),
		),
		validation.Field(&f.Status,
			validation.When(f.Status != "", validation.In(
				string(models.BannerStatusActive), string(models.BannerStatusInactive),
			)),
		),
	)
}

// contactForm is the request body for updating the clinic contact record.
type contactForm struct {
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	Address         string  `json:"address"`
	AddressEN       *string `json:"address_en,omitempty"`
	BusinessHours   *string `json:"business_hours,omitempty"`
	BusinessHoursEN *string `json:"business_hours_en,omitempty"`
	FacebookURL     *string `json:"facebook_url,omitempty"`
	ZaloURL         *string `json:"zalo_url,omitempty"`
	YoutubeURL      *string `json:"youtube_url,omitempty"`
	AppointmentLink *string `json:"appointment_link,omitempty"`
}

func (f contactForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email,
			validation.When(f.Email != "", is.Email.Error("invalid email format")),
		),
		validation.Field(&f.FacebookURL,
			validation.When(f.FacebookURL != nil && *f.FacebookURL != "", is.URL),
		),
		validation.Field(&f.YoutubeURL,
			validation.When(f.YoutubeURL != nil && *f.YoutubeURL != "", is.URL),
		),
	)
}

// userForm is the request body for creating a user account.
type userForm struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

func (f userForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&f.Password,
			validation.Required.Error("password is required"),
			validation.RuneLength(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&f.DisplayName,
			validation.Required.Error("display name is required"),
			validation.RuneLength(1, 100),
		),
		validation.Field(&f.Role,
			validation.Required.Error("role is required"),
			validation.In(
				string(models.RoleEditor), string(models.RoleAdmin), string(models.RoleSuperAdmin),
			).Error("invalid role"),
		),
	)
}

// userUpdateForm is the request body for updating a user account. Password
// is optional; empty means unchanged.
type userUpdateForm struct {
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Password    string `json:"password,omitempty"`
}

func (f userUpdateForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.DisplayName,
			validation.Required.Error("display name is required"),
			validation.RuneLength(1, 100),
		),
		validation.Field(&f.Role,
			validation.Required.Error("role is required"),
			validation.In(
				string(models.RoleEditor), string(models.RoleAdmin), string(models.RoleSuperAdmin),
			).Error("invalid role"),
		),
		validation.Field(&f.Password,
			validation.When(f.Password != "", validation.RuneLength(8, 128).Error("password must be 8-128 characters")),
		),
	)
}

// loginForm is the request body for the login endpoint.
type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f loginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Password, validation.Required),
	)
}

// twoFAForm carries a TOTP code.
type twoFAForm struct {
	Code string `json:"code"`
}

func (f twoFAForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Code,
			validation.Required.Error("code is required"),
			validation.RuneLength(6, 6).Error("code must be 6 digits"),
			is.Digit.Error("code must be 6 digits"),
		),
	)
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains all database access for the CMS. Stores return
// (nil, nil) for not-found lookups and sentinel errors for conflicts so
// handlers can map them onto HTTP status codes.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrSlugTaken is returned when a slug collides with an existing row
	// of the same entity type. Slugs are never auto-suffixed.
	ErrSlugTaken = errors.New("slug already exists")

	// ErrHomepageCapReached is returned when flagging one more item for
	// homepage display would exceed the per-type cap.
	ErrHomepageCapReached = errors.New("homepage item cap reached")

	// ErrMediaInUse blocks deletion of media referenced by content, team
	// members, or banners.
	ErrMediaInUse = errors.New("media is referenced by existing records")

	// ErrCategoryInUse blocks deletion of a category still referenced by
	// news or posts.
	ErrCategoryInUse = errors.New("category is referenced by existing content")

	// ErrBannerTypeTaken enforces the one-banner-per-type invariant.
	ErrBannerTypeTaken = errors.New("a banner of this type already exists")

	// ErrEmailTaken is returned when creating or updating a user with an
	// email that already exists.
	ErrEmailTaken = errors.New("email already exists")
)

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505). The schema carries unique constraints that
// back the application-level checks, so races between concurrent writers
// surface here instead of corrupting invariants.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

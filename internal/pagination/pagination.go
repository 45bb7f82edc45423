// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pagination computes list metadata and the page-number windows
// rendered by list views ("1 … 4 5 6 … 10").
package pagination

// Ellipsis is the token emitted in a page window where page numbers are
// elided. It can never collide with a real page number.
const Ellipsis = -1

// Meta describes one page of a list result.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewMeta builds list metadata from a total row count and the requested
// page/limit pair.
func NewMeta(total, page, limit int) Meta {
	return Meta{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}
}

// TotalPages returns the number of pages needed for total items at the
// given page size. Zero items still occupy one page.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		return 1
	}
	return pages
}

// Window returns the ordered sequence of page tokens for a pager: always
// page 1 and the last page, the current page with one neighbor on each
// side, and Ellipsis markers for the gaps.
//
// Window is a pure function of (current, totalPages). Out-of-range current
// values are clamped.
func Window(current, totalPages int) []int {
	if totalPages <= 1 {
		return []int{1}
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	tokens := []int{1}

	// Left gap between page 1 and the neighbor window.
	if current-1 > 2 {
		tokens = append(tokens, Ellipsis)
	}

	for p := current - 1; p <= current+1; p++ {
		if p > 1 && p < totalPages {
			tokens = append(tokens, p)
		}
	}

	// Right gap between the neighbor window and the last page.
	if current+1 < totalPages-1 {
		tokens = append(tokens, Ellipsis)
	}

	tokens = append(tokens, totalPages)
	return tokens
}

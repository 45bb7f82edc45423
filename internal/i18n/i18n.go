// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n resolves bilingual content fields. Records store paired
// vi/en columns; resolution happens per field, so a record can mix
// translated and untranslated values in one response. A missing English
// value falls back silently to the Vietnamese default.
package i18n

import "strings"

// Locale selects the language variant of a response.
type Locale string

const (
	// LocaleVI is the default locale.
	LocaleVI Locale = "vi"
	// LocaleEN is the optional English translation.
	LocaleEN Locale = "en"
)

// Parse normalizes a raw locale value (query parameter, header) into a
// supported Locale. Anything that is not English resolves to the default.
func Parse(raw string) Locale {
	if strings.EqualFold(strings.TrimSpace(raw), string(LocaleEN)) {
		return LocaleEN
	}
	return LocaleVI
}

// IsEnglish reports whether the locale requests the English variant.
func (l Locale) IsEnglish() bool {
	return l == LocaleEN
}

// Field returns the English value for the "en" locale when it is present
// and non-empty, otherwise the default-language value.
func Field(l Locale, def string, en *string) string {
	if l.IsEnglish() && en != nil && *en != "" {
		return *en
	}
	return def
}

// OptionalField resolves a pair where the default side is itself optional.
// Returns nil when neither side has a value.
func OptionalField(l Locale, def, en *string) *string {
	if l.IsEnglish() && en != nil && *en != "" {
		return en
	}
	return def
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders adds security-related HTTP headers to every response.
// The server only ever emits JSON, so the headers are tuned for an API
// rather than for rendered pages.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// JSON must never be interpreted as HTML or script.
		h.Set("X-Content-Type-Options", "nosniff")

		// API responses have no business being framed at all.
		h.Set("X-Frame-Options", "DENY")

		// A no-op CSP for JSON; stops anything if a response is ever
		// coerced into rendering.
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		h.Set("X-XSS-Protection", "0")
		h.Set("Referrer-Policy", "no-referrer")

		next.ServeHTTP(w, r)
	})
}

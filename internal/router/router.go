// Package router sets up all HTTP routes and middleware chains for the
// CMS JSON API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"therapycms/internal/handlers"
	"therapycms/internal/middleware"
	"therapycms/internal/session"
)

// Handlers bundles every handler group the router mounts.
type Handlers struct {
	Auth       *handlers.Auth
	Posts      *handlers.Content
	News       *handlers.Content
	Services   *handlers.Content
	Categories *handlers.Categories
	Team       *handlers.Team
	Banners    *handlers.Banners
	Contact    *handlers.Contact
	Media      *handlers.Media
	Users      *handlers.Users
	AuditLog   *handlers.AuditLog
	Public     *handlers.Public
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Login is rate-limited to slow down credential stuffing.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Authentication.
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Middleware).Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/me", h.Auth.Me)

			// 2FA — requires auth but NOT completed 2FA.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/2fa/setup", h.Auth.TwoFASetup)
				r.Post("/2fa/verify", h.Auth.TwoFAVerify)
			})
		})

		// Public localized endpoints — anonymous.
		r.Route("/public", func(r chi.Router) {
			r.Get("/home", h.Public.Home)
			r.Get("/news", h.Public.ListNews)
			r.Get("/news/{slug}", h.Public.NewsDetail)
			r.Get("/services", h.Public.ListServices)
			r.Get("/services/{slug}", h.Public.ServiceDetail)
			r.Get("/posts", h.Public.ListPosts)
			r.Get("/posts/{slug}", h.Public.PostDetail)
			r.Get("/team", h.Public.Team)
			r.Get("/contact", h.Public.Contact)
			r.Get("/banners", h.Public.Banners)
		})

		// Authenticated + 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			mountContent := func(path string, c *handlers.Content) {
				r.Route(path, func(r chi.Router) {
					r.Get("/", c.List)
					r.Post("/", c.Create)
					r.Get("/{id}", c.Get)
					r.Put("/{id}", c.Update)
					r.Patch("/{id}/status", c.UpdateStatus)
					r.Delete("/{id}", c.Delete)
				})
			}
			mountContent("/posts", h.Posts)
			mountContent("/news", h.News)
			mountContent("/services", h.Services)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.Categories.List)
				r.Post("/", h.Categories.Create)
				r.Put("/{id}", h.Categories.Update)
				r.Delete("/{id}", h.Categories.Delete)
			})

			r.Route("/team", func(r chi.Router) {
				r.Get("/", h.Team.List)
				r.Post("/", h.Team.Create)
				r.Get("/{id}", h.Team.Get)
				r.Put("/{id}", h.Team.Update)
				r.Delete("/{id}", h.Team.Delete)
			})

			r.Route("/banners", func(r chi.Router) {
				r.Get("/", h.Banners.List)
				r.Post("/", h.Banners.Create)
				r.Get("/{id}", h.Banners.Get)
				r.Put("/{id}", h.Banners.Update)
				r.Delete("/{id}", h.Banners.Delete)
			})

			r.Route("/contact", func(r chi.Router) {
				r.Get("/", h.Contact.Get)
				// POST and PUT both upsert the canonical contact row.
				r.Post("/", h.Contact.Update)
				r.Put("/", h.Contact.Update)
			})

			r.Route("/media", func(r chi.Router) {
				r.Get("/", h.Media.List)
				r.Post("/", h.Media.Upload)
				r.Get("/{id}", h.Media.Get)
				r.Delete("/{id}", h.Media.Delete)
			})

			// User management — super admin only.
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin)
				r.Get("/", h.Users.List)
				r.Post("/", h.Users.Create)
				r.Put("/{id}", h.Users.Update)
				r.Post("/{id}/reset-2fa", h.Users.ResetTOTP)
				r.Delete("/{id}", h.Users.Delete)
			})

			// Audit trail — super admin only.
			r.Route("/audit", func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin)
				r.Get("/", h.AuditLog.List)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

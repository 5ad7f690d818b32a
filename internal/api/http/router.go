package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-booking/internal/api/http/handlers"
	"github.com/spec-kit/astro-booking/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Admin          *handlers.AdminHandler
	Preferences    *handlers.PreferencesHandler
	Site           *handlers.SiteHandler
	Bookings       *handlers.BookingHandler
	AuthMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	admin := api.Group("/admin")
	admin.Post("/signup", cfg.Admin.Signup)
	admin.Post("/create-user", cfg.Admin.CreateUser)
	admin.Get("/session", cfg.AuthMiddleware.Handle, cfg.Admin.Session)
	admin.Get("/roles", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Admin.Roles)

	prefs := api.Group("/preferences")
	prefs.Get("", cfg.Preferences.Get)
	prefs.Put("", cfg.Preferences.Update)
	prefs.Post("/language/toggle", cfg.Preferences.ToggleLanguage)
	prefs.Post("/theme/toggle", cfg.Preferences.ToggleTheme)

	siteGroup := api.Group("/site")
	siteGroup.Get("/pages/:page", cfg.Site.Page)
	siteGroup.Get("/services", cfg.Site.Services)

	api.Post("/bookings", cfg.Bookings.Create)
}

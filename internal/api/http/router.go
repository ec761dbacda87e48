package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-support/internal/api/http/handlers"
	"github.com/spec-kit/bank-support/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Complaints     *handlers.ComplaintsHandler
	Accounts       *handlers.AccountsHandler
	Preferences    *handlers.PreferencesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	// Complaint submission is public, as on the original landing page.
	app.Post("/complaints", cfg.Complaints.Submit)

	preferences := app.Group("/preferences", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	preferences.Get("/", cfg.Preferences.Get)
	preferences.Put("/", cfg.Preferences.Update)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/complaints", cfg.Complaints.List)
	admin.Get("/complaints/:id", cfg.Complaints.Detail)
	admin.Patch("/complaints/:id/status", cfg.Complaints.UpdateStatus)
	admin.Get("/accounts", cfg.Accounts.Search)
	admin.Patch("/accounts/:id/role", cfg.Accounts.UpdateRole)
	admin.Delete("/accounts/:id", cfg.Accounts.Delete)
}

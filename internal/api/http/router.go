package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eventology/recruiting-service/internal/api/http/handlers"
	"github.com/eventology/recruiting-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Intake         *handlers.IntakeHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/verify", cfg.Auth.Verify)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	// Public intake surface.
	app.Post("/applications", cfg.Intake.SubmitApplication)
	app.Post("/inquiries", cfg.Intake.SubmitInquiry)
	app.Get("/settings", cfg.Intake.GetSettings)

	// Admin surface: authorization runs before any store access.
	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/applications", cfg.Admin.ListApplications)
	admin.Patch("/applications/:id/status", cfg.Admin.UpdateApplicationStatus)
	admin.Get("/inquiries", cfg.Admin.ListInquiries)
	admin.Patch("/inquiries/:id/status", cfg.Admin.UpdateInquiryStatus)
	admin.Delete("/inquiries/:id", cfg.Admin.DeleteInquiry)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Post("/users/:id/promote", cfg.Admin.PromoteUser)
	admin.Post("/users/:id/demote", cfg.Admin.DemoteUser)
	admin.Get("/settings", cfg.Admin.GetSettings)
	// Settings mutation answers on both verbs; existing dashboard clients POST.
	admin.Patch("/settings", cfg.Admin.UpdateSettings)
	admin.Post("/settings", cfg.Admin.UpdateSettings)
	admin.Post("/wipe", auth.RequireSuperAdmin(), cfg.Admin.Wipe)
}

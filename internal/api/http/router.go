package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/http/handlers"
	"github.com/spec-kit/support-desk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Profile        *handlers.ProfileHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/", cfg.Users.Register)
	users.Get("/", cfg.AuthMiddleware.Handle, auth.RequirePermission(auth.ActionUserManage), cfg.Users.List)
	users.Get("/:id", cfg.AuthMiddleware.Handle, auth.RequirePermission(auth.ActionUserManage), cfg.Users.Get)
	users.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequirePermission(auth.ActionUserManage), cfg.Users.Delete)

	authGroup := api.Group("/auth")
	authGroup.Post("/", cfg.Auth.Login)
	authGroup.Get("/", cfg.AuthMiddleware.Handle, cfg.Auth.Current)
	authGroup.Post("/change-password", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	profile := api.Group("/profile", cfg.AuthMiddleware.Handle)
	profile.Get("/me", cfg.Profile.Me)
	profile.Put("/", cfg.Profile.Update)
	profile.Put("/phone", cfg.Profile.UpdatePhone)
	profile.Put("/email", cfg.Profile.UpdateEmail)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", cfg.Tickets.Delete)
}

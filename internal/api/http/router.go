package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Assets         *handlers.AssetsHandler
	Schools        *handlers.SchoolsHandler
	Users          *handlers.UsersHandler
	Inquiries      *handlers.InquiriesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/register", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Users.Register)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireAnyRole(), cfg.Users.Me)

	// Marketing endpoints stay public; the site contact form and the
	// newsletter widget post here without a session.
	app.Post("/api/inquiries", cfg.Inquiries.Create)
	app.Post("/api/subscriptions", cfg.Inquiries.Subscribe)
	app.Post("/api/subscriptions/unsubscribe", cfg.Inquiries.Unsubscribe)

	api := app.Group("/api", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())

	api.Post("/tickets", cfg.Tickets.Create)
	api.Get("/tickets", cfg.Tickets.List)
	api.Get("/tickets/:id", cfg.Tickets.Get)
	api.Put("/tickets/:id", cfg.Tickets.Update)

	api.Post("/assets/assign", cfg.Assets.Assign)
	api.Get("/assets", cfg.Assets.List)
	api.Get("/assets/:id", cfg.Assets.Get)
	api.Put("/assets/:id", cfg.Assets.Update)
	api.Post("/assets/:id/deassign", cfg.Assets.Deassign)
	api.Delete("/assets/:id", cfg.Assets.Deassign)

	api.Post("/products", auth.RequireAdmin(), cfg.Assets.CreateProduct)
	api.Get("/products", cfg.Assets.ListProducts)
	api.Get("/products/:id", cfg.Assets.GetProduct)

	api.Post("/schools", auth.RequireAdmin(), cfg.Schools.Create)
	api.Get("/schools", cfg.Schools.List)
	api.Get("/schools/:id", cfg.Schools.Get)
	api.Put("/schools/:id", auth.RequireAdmin(), cfg.Schools.Update)

	api.Get("/users", auth.RequireAdmin(), cfg.Users.List)
	api.Put("/users/:id", auth.RequireAdmin(), cfg.Users.Update)

	api.Get("/inquiries", auth.RequireAdmin(), cfg.Inquiries.List)
	api.Put("/inquiries/:id", auth.RequireAdmin(), cfg.Inquiries.Update)
	api.Get("/subscriptions", auth.RequireAdmin(), cfg.Inquiries.ListSubscriptions)
}

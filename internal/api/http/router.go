package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/bitwharf/helpdesk/internal/api/http/handlers"
	"github.com/bitwharf/helpdesk/internal/auth"
	"github.com/bitwharf/helpdesk/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(observability.MetricsHandler()))

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequirePrincipal())

	protected.Post("/users", cfg.Users.Register)
	protected.Get("/users", cfg.Users.List)

	protected.Post("/tickets", cfg.Tickets.Create)
	protected.Get("/tickets", cfg.Tickets.List)
	protected.Get("/tickets/:id", cfg.Tickets.Get)
	protected.Patch("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	protected.Patch("/tickets/:id/assign", cfg.Tickets.Assign)
	protected.Delete("/tickets/:id", cfg.Tickets.Delete)
	protected.Get("/tickets/:id/history", cfg.Tickets.History)

	protected.Post("/tickets/:id/comments", cfg.Comments.Post)
	protected.Get("/tickets/:id/comments", cfg.Comments.List)
	protected.Patch("/tickets/:id/comments/:commentID", cfg.Comments.Edit)
	protected.Delete("/tickets/:id/comments/:commentID", cfg.Comments.Delete)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloglist/internal/api/http/handlers"
	"github.com/spec-kit/bloglist/internal/auth"
	"github.com/spec-kit/bloglist/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Login          *handlers.LoginHandler
	Users          *handlers.UsersHandler
	Blogs          *handlers.BlogsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes. The unknown-endpoint responder goes last.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}

	api := app.Group("/api")
	api.Post("/login", cfg.Login.Login)

	users := api.Group("/users")
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)

	blogs := api.Group("/blogs")
	blogs.Get("/", cfg.Blogs.List)
	blogs.Get("/:id", cfg.Blogs.Get)
	blogs.Post("/", cfg.AuthMiddleware.ResolveUser, cfg.Blogs.Create)
	blogs.Put("/:id", cfg.AuthMiddleware.ValidateToken, cfg.Blogs.Update)
	blogs.Delete("/:id", cfg.AuthMiddleware.ResolveUser, cfg.Blogs.Delete)

	app.Use(unknownEndpoint)
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bloglist/internal/observability"
)

// ServerConfig holds what NewServer needs besides the routes.
type ServerConfig struct {
	AppName        string
	RequestTimeout time.Duration
	Logger         *zap.Logger
	Metrics        *observability.Metrics
}

// NewServer builds the fiber app with middlewares and routes registered. The app is immutable
// because request values reach events handled after the response is sent.
func NewServer(cfg ServerConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
		Immutable:             true,
		ErrorHandler:          FallbackErrorHandler(cfg.Logger),
	})

	RegisterMiddlewares(app, cfg.Logger, cfg.Metrics, cfg.RequestTimeout)
	if routes.Metrics == nil {
		routes.Metrics = cfg.Metrics
	}
	RegisterRoutes(app, routes)
	return app
}

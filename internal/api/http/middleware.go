package http

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bloglist/internal/observability"
	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

// RegisterMiddlewares attaches global middlewares: request logging first, then failure
// translation, then the optional request timeout.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware renders every failure the translator recognizes and writes exactly
// one response for it. Anything else is returned unchanged for FallbackErrorHandler.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = fmt.Errorf("panic: %v", r)
			}
			if err == nil {
				return
			}

			metrics.RecordError(observability.RoutePattern(c), c.Method(), apperrors.KindOf(err).String())

			status, body, handled := apperrors.Translate(err)
			if !handled {
				return
			}
			err = c.Status(status).JSON(body)
		}()
		return c.Next()
	}
}

// FallbackErrorHandler handles failures the translator left alone. It never leaks the
// underlying error text except for *fiber.Error, whose message is meant for clients.
func FallbackErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(apperrors.ErrorBody{Error: fe.Message})
		}

		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(apperrors.ErrorBody{Error: "internal server error"})
	}
}

func unknownEndpoint(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(apperrors.ErrorBody{Error: "unknown endpoint"})
}

// Package routes defines the API routing configuration.
package routes

import (
	"time"

	"moneytransfer/internal/handlers"
	"moneytransfer/internal/middleware"
	"moneytransfer/internal/services/transfer"
	"moneytransfer/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Dependencies is everything the routes need, built once at process start.
type Dependencies struct {
	Transfers    transfer.Service
	HealthChecks map[string]handlers.HealthCheck
	Logger       *zap.Logger

	// JWTSecret enables the bearer token guard on /transfer-money when set.
	JWTSecret string
	// RateLimitMax enables per-IP rate limiting on /transfer-money when > 0.
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// NewApp creates the fiber app with the JSON error handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler:          response.ErrorHandler,
		DisableStartupMessage: true,
	})
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	app.Use(recover.New())
	app.Use(requestid.New())

	app.Get("/health", handlers.Health(deps.HealthChecks))

	transferHandler := handlers.NewTransferHandler(deps.Transfers)

	chain := []fiber.Handler{}
	if deps.RateLimitMax > 0 {
		chain = append(chain, limiter.New(limiter.Config{
			Max:        deps.RateLimitMax,
			Expiration: deps.RateLimitWindow,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return response.ErrorCode(c, fiber.StatusTooManyRequests, response.CodeTooManyRequests)
			},
		}))
	}
	if deps.JWTSecret != "" {
		chain = append(chain, middleware.JWTAuth(deps.JWTSecret, deps.Logger))
	}
	chain = append(chain, transferHandler.Transfer)

	app.Post("/transfer-money", chain...)
}

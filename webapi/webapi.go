// Package webapi provides HTTP handlers and API endpoints for the loantrack
// application. It is organized into sub-packages per domain:
// - loan: loan endpoints including balance and restore
// - payment: payment endpoints
// - user: user management endpoints
// - auth: authentication endpoints
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/loantrack/pkg/app"
	authweb "github.com/amirasaad/loantrack/webapi/auth"
	"github.com/amirasaad/loantrack/webapi/common"
	loanweb "github.com/amirasaad/loantrack/webapi/loan"
	paymentweb "github.com/amirasaad/loantrack/webapi/payment"
	userweb "github.com/amirasaad/loantrack/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gofiber/swagger"
)

// SetupApp initializes Fiber with middleware and all routes.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	// Rate limiting keyed on the originating client: X-Forwarded-For first
	// hop behind a proxy, X-Real-IP, then the direct peer.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Loantrack API is running! 🚀")
	})

	loanweb.Routes(fiberApp, a.LoanService, a.AuthService, a.Config)
	paymentweb.Routes(fiberApp, a.PaymentService, a.AuthService, a.Config)
	userweb.Routes(fiberApp, a.UserService, a.AuthService, a.Config)
	authweb.Routes(fiberApp, a.AuthService)

	return fiberApp
}

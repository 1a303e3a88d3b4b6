// Package middleware provides Fiber middleware shared across routes.
package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"

	"github.com/amirasaad/loantrack/pkg/config"
	"github.com/amirasaad/loantrack/webapi/common"
)

// JwtProtected returns a middleware that rejects requests without a valid
// Bearer token. The verified *jwt.Token is stored in c.Locals("user") for
// handlers to read.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(
				c,
				"Unauthorized",
				nil,
				"Missing or invalid token",
				fiber.StatusUnauthorized,
			)
		},
	})
}

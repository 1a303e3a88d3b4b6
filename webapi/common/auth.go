package common

import (
	"github.com/amirasaad/loantrack/pkg/domain/user"
	authsvc "github.com/amirasaad/loantrack/pkg/service/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CurrentUserID reads the verified JWT stored by the auth middleware and
// returns the authenticated user's ID.
func CurrentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return authSvc.GetCurrentUserID(token)
}

// ClientIP returns the originating client address, preferring the first hop
// of X-Forwarded-For when the service sits behind a proxy.
func ClientIP(c *fiber.Ctx) string {
	if ips := c.IPs(); len(ips) > 0 {
		return ips[0]
	}
	return c.IP()
}

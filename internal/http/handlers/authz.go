package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/log"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/services"
)

// RequireAuth validates a Bearer token and stashes the claims in locals.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		const prefix = "Bearer "
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, prefix) {
			applog.Security(c, "auth.missing", nil)
			return fail(c, fiber.StatusUnauthorized, "Authentication required")
		}
		claims, err := auth.Parse(strings.TrimPrefix(header, prefix))
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// RequireRole gates a route to the given roles. Runs after RequireAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		applog.Security(c, "auth.role.denied", map[string]any{"role": role})
		return fail(c, fiber.StatusForbidden, "Insufficient permissions")
	}
}

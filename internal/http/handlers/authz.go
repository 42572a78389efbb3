package handlers

import (
	applog "shopnest/internal/log"
	"shopnest/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireUser resolves the sid cookie to a user and attaches it to the
// request; the services below only ever see the resolved user id.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return message(c, fiber.StatusUnauthorized, "authentication required")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return message(c, fiber.StatusUnauthorized, "authentication required")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return message(c, fiber.StatusUnauthorized, "authentication required")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return message(c, fiber.StatusUnauthorized, "authentication required")
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"user": u.ID})
			return message(c, fiber.StatusForbidden, "admin access required")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

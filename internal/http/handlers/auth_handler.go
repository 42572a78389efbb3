package handlers

import (
	"time"

	applog "shopnest/internal/log"
	"shopnest/internal/services"
	"shopnest/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return message(c, fiber.StatusBadRequest, "invalid email")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return message(c, fiber.StatusBadRequest, "invalid name")
	}
	if !validate.Password(req.Password) {
		return message(c, fiber.StatusBadRequest, "password must be 8-64 characters with upper, lower and digit")
	}

	u, err := h.Auth.Register(ensureSID(c), email, name, req.Password)
	if err != nil {
		return fail(c, "auth.register.fail", err)
	}
	applog.Audit(c, "auth.register", map[string]any{"user": u.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Registered successfully", "user": u})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}
	if _, ok := validate.Email(req.Email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return message(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	u, err := h.Auth.Login(ensureSID(c), req.Email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return message(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	applog.Audit(c, "auth.login.success", map[string]any{"user": u.ID})
	return c.JSON(fiber.Map{"message": "Logged in", "user": u})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the authenticated user (RequireUser runs first).
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopnest/internal/domain"
	applog "shopnest/internal/log"
	"shopnest/internal/repos"
	"shopnest/internal/services"
)

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// fail maps a service/repo error onto the HTTP taxonomy: business rules and
// validation are 400s with the rule's message, missing rows are 404s, and
// everything else is a logged 500 with a generic body.
func fail(c *fiber.Ctx, action string, err error) error {
	var stockErr *repos.StockError
	switch {
	case errors.As(err, &stockErr),
		errors.Is(err, repos.ErrCartEmpty),
		errors.Is(err, repos.ErrInsufficientPoints),
		errors.Is(err, services.ErrMissingShipping),
		errors.Is(err, services.ErrAlertExists),
		errors.Is(err, services.ErrSpinUsed),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrEmailTaken):
		applog.Security(c, action, map[string]any{"error": err.Error()})
		return message(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, services.ErrNotOwner):
		// Ownership failures read as 404 so ids cannot be probed.
		return message(c, fiber.StatusNotFound, "not found")
	default:
		applog.Error(c, action, err, nil)
		return message(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

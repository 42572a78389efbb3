package handlers

import (
	applog "shopnest/internal/log"
	"shopnest/internal/services"
	"shopnest/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	Alerts *services.AlertService
}

type alertRequest struct {
	ProductID   string  `json:"product_id"`
	TargetPrice float64 `json:"target_price"`
}

func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var req alertRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok || !validate.Price(req.TargetPrice) {
		return message(c, fiber.StatusBadRequest, "Product ID and target price are required")
	}
	id, err := h.Alerts.Create(currentUser(c).ID, pid, req.TargetPrice)
	if err != nil {
		return fail(c, "alerts.create.fail", err)
	}
	applog.Audit(c, "alerts.create", map[string]any{"alert": id, "product": pid})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Price alert set successfully", "id": id})
}

func (h *AlertHandler) List(c *fiber.Ctx) error {
	alerts, err := h.Alerts.List(currentUser(c).ID)
	if err != nil {
		return fail(c, "alerts.list.fail", err)
	}
	return c.JSON(alerts)
}

type alertUpdateRequest struct {
	TargetPrice float64 `json:"target_price"`
}

func (h *AlertHandler) Update(c *fiber.Ctx) error {
	alertID, ok := validate.ID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusBadRequest, "missing alert id")
	}
	var req alertUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !validate.Price(req.TargetPrice) {
		return message(c, fiber.StatusBadRequest, "Target price is required")
	}
	a, err := h.Alerts.UpdateTarget(alertID, currentUser(c).ID, req.TargetPrice)
	if err != nil {
		return fail(c, "alerts.update.fail", err)
	}
	return c.JSON(a)
}

func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	alertID, ok := validate.ID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusBadRequest, "missing alert id")
	}
	if err := h.Alerts.Delete(alertID, currentUser(c).ID); err != nil {
		return fail(c, "alerts.delete.fail", err)
	}
	applog.Audit(c, "alerts.delete", map[string]any{"alert": alertID})
	return c.JSON(fiber.Map{"message": "Price alert deleted successfully"})
}

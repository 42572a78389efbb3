package handlers

import (
	applog "shopnest/internal/log"
	"shopnest/internal/services"
	"shopnest/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Order *services.OrderService
}

// GET /api/admin/orders
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	orders, err := h.Order.ListLatest(100)
	if err != nil {
		return fail(c, "admin.orders.list.fail", err)
	}
	return c.JSON(orders)
}

type statusRequest struct {
	Status string `json:"status"`
}

// PUT /api/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	orderID, ok := validate.ID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusBadRequest, "missing order id")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}
	status, ok := validate.Status(req.Status)
	if !ok {
		return message(c, fiber.StatusBadRequest, "invalid status")
	}
	if err := h.Order.SetStatus(orderID, status); err != nil {
		return fail(c, "admin.orders.status.fail", err)
	}
	applog.Audit(c, "admin.orders.status", map[string]any{"order_id": orderID, "status": status})
	return c.JSON(fiber.Map{"message": "Order status updated successfully"})
}

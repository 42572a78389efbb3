package handlers

import (
	applog "shopnest/internal/log"
	"shopnest/internal/services"
	"shopnest/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Order *services.OrderService
}

type checkoutRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZIP           string `json:"zip"`
	PaymentMethod string `json:"paymentMethod"`
	RedeemPoints  int    `json:"redeemPoints"`
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}
	name, okName := validate.Name(req.Name)
	email, okEmail := validate.Email(req.Email)
	address, okAddr := validate.Line(req.Address)
	city, okCity := validate.Line(req.City)
	state, okState := validate.Line(req.State)
	zip, okZIP := validate.ZIP(req.ZIP)
	if !okName || !okEmail || !okAddr || !okCity || !okState || !okZIP || req.PaymentMethod == "" {
		applog.Security(c, "order.create.validation", nil)
		return message(c, fiber.StatusBadRequest, "Missing required shipping or payment information")
	}

	res, err := h.Order.Place(services.CheckoutCommand{
		UserID:        u.ID,
		Name:          name,
		Email:         email,
		Address:       address,
		City:          city,
		State:         state,
		ZIP:           zip,
		PaymentMethod: req.PaymentMethod,
		RedeemPoints:  req.RedeemPoints,
	})
	if err != nil {
		return fail(c, "order.create.fail", err)
	}

	applog.Audit(c, "order.create", map[string]any{
		"order_id": res.OrderID,
		"final":    res.FinalAmount,
		"discount": res.Discount,
	})
	return c.JSON(fiber.Map{
		"message":      "Order created successfully",
		"orderId":      res.OrderID,
		"earnedPoints": res.EarnedPoints,
		"discount":     res.Discount,
		"finalAmount":  res.FinalAmount,
	})
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Order.ListForUser(currentUser(c).ID)
	if err != nil {
		return fail(c, "order.list.fail", err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	orderID, ok := validate.ID(c.Params("orderId"))
	if !ok {
		return message(c, fiber.StatusBadRequest, "missing order id")
	}
	if err := h.Order.Delete(orderID, currentUser(c).ID); err != nil {
		return fail(c, "order.delete.fail", err)
	}
	applog.Audit(c, "order.delete", map[string]any{"order_id": orderID})
	return c.JSON(fiber.Map{"message": "Order deleted successfully"})
}

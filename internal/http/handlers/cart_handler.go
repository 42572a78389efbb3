package handlers

import (
	"shopnest/internal/services"
	"shopnest/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(currentUser(c).ID)
	if err != nil {
		return fail(c, "cart.view.fail", err)
	}
	return c.JSON(cv)
}

func (h *CartHandler) Count(c *fiber.Ctx) error {
	n, err := h.Cart.Count(currentUser(c).ID)
	if err != nil {
		return fail(c, "cart.count.fail", err)
	}
	return c.JSON(fiber.Map{"count": n})
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return message(c, fiber.StatusBadRequest, "missing productId")
	}
	if err := h.Cart.Add(currentUser(c).ID, pid, req.Quantity); err != nil {
		return fail(c, "cart.add.fail", err)
	}
	return c.JSON(fiber.Map{"message": "Added to cart"})
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	itemID, ok := validate.ID(c.Params("itemId"))
	if !ok {
		return message(c, fiber.StatusBadRequest, "missing itemId")
	}
	var req updateCartRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}
	found, err := h.Cart.UpdateItem(currentUser(c).ID, itemID, req.Quantity)
	if err != nil {
		return fail(c, "cart.update.fail", err)
	}
	if !found {
		return message(c, fiber.StatusNotFound, "cart item not found")
	}
	return c.JSON(fiber.Map{"message": "Cart updated"})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	itemID, ok := validate.ID(c.Params("itemId"))
	if !ok {
		return message(c, fiber.StatusBadRequest, "missing itemId")
	}
	found, err := h.Cart.RemoveItem(currentUser(c).ID, itemID)
	if err != nil {
		return fail(c, "cart.remove.fail", err)
	}
	if !found {
		return message(c, fiber.StatusNotFound, "cart item not found")
	}
	return c.JSON(fiber.Map{"message": "Removed from cart"})
}

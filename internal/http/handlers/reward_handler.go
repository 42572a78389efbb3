package handlers

import (
	applog "shopnest/internal/log"
	"shopnest/internal/services"
	"shopnest/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type RewardHandler struct {
	Rewards *services.RewardService
}

func (h *RewardHandler) Balance(c *fiber.Ctx) error {
	points, err := h.Rewards.Balance(currentUser(c).ID)
	if err != nil {
		return fail(c, "rewards.balance.fail", err)
	}
	return c.JSON(fiber.Map{"points": points})
}

func (h *RewardHandler) History(c *fiber.Ctx) error {
	rows, err := h.Rewards.History(currentUser(c).ID)
	if err != nil {
		return fail(c, "rewards.history.fail", err)
	}
	return c.JSON(rows)
}

type pointsRequest struct {
	Points      int    `json:"points"`
	Description string `json:"description"`
}

func (h *RewardHandler) Earn(c *fiber.Ctx) error {
	var req pointsRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !validate.Points(req.Points) {
		return message(c, fiber.StatusBadRequest, "points must be positive")
	}
	if err := h.Rewards.Earn(currentUser(c).ID, req.Points, req.Description); err != nil {
		return fail(c, "rewards.earn.fail", err)
	}
	return c.JSON(fiber.Map{"message": "Points added successfully!"})
}

func (h *RewardHandler) Redeem(c *fiber.Ctx) error {
	var req pointsRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !validate.Points(req.Points) {
		return message(c, fiber.StatusBadRequest, "points must be positive")
	}
	if err := h.Rewards.Redeem(currentUser(c).ID, req.Points, req.Description); err != nil {
		return fail(c, "rewards.redeem.fail", err)
	}
	return c.JSON(fiber.Map{"message": "Points redeemed!"})
}

func (h *RewardHandler) Spin(c *fiber.Ctx) error {
	reward, err := h.Rewards.Spin(currentUser(c).ID)
	if err != nil {
		return fail(c, "rewards.spin.fail", err)
	}
	applog.Audit(c, "rewards.spin", map[string]any{"type": reward.Type, "value": reward.Value})
	return c.JSON(fiber.Map{"reward": reward})
}

package handlers

import (
	"errors"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/middleware"
	"github.com/ecobin/ecobin-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreditHandler struct {
	credits *services.CreditService
}

func NewCreditHandler(credits *services.CreditService) *CreditHandler {
	return &CreditHandler{credits: credits}
}

func (h *CreditHandler) My(c *fiber.Ctx) error {
	user := middleware.Account(c)
	summary, err := h.credits.Summary(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch credits"))
	}
	return c.JSON(fiber.Map{"success": true, "data": summary})
}

func (h *CreditHandler) Redeem(c *fiber.Ctx) error {
	user := middleware.Account(c)

	var req dto.RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	if req.PartnerID == "" || req.Credits == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Please provide partner ID and credits amount"))
	}
	partnerID, err := uuid.Parse(req.PartnerID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid partner ID"))
	}

	remaining, err := h.credits.Redeem(user.ID, partnerID, req.Credits)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPartnerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Error(err.Error()))
		case errors.Is(err, services.ErrPartnerMismatch), errors.Is(err, services.ErrInsufficientCredits):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to redeem credits"))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Credits redeemed successfully",
		"data":    dto.RedeemResponse{RemainingCredits: remaining},
	})
}

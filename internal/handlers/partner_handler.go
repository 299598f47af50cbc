package handlers

import (
	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PartnerHandler struct {
	partners *services.PartnerService
}

func NewPartnerHandler(partners *services.PartnerService) *PartnerHandler {
	return &PartnerHandler{partners: partners}
}

// List is the public redemption catalog: active partners only.
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	partners, err := h.partners.ListActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch partners"))
	}
	return c.JSON(fiber.Map{"success": true, "data": partners})
}

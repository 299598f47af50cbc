package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler bundles the admin-only surface: user management, pickup
// oversight, the redemption catalog, platform stats and settings.
type AdminHandler struct {
	users    *services.UserService
	pickups  *services.PickupService
	credits  *services.CreditService
	partners *services.PartnerService
	stats    *services.StatsService
	settings *services.SettingsService
}

func NewAdminHandler(
	users *services.UserService,
	pickups *services.PickupService,
	credits *services.CreditService,
	partners *services.PartnerService,
	stats *services.StatsService,
	settings *services.SettingsService,
) *AdminHandler {
	return &AdminHandler{
		users:    users,
		pickups:  pickups,
		credits:  credits,
		partners: partners,
		stats:    stats,
		settings: settings,
	}
}

// --- Users ---

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch users"))
	}
	return c.JSON(fiber.Map{"success": true, "data": users})
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	user, err := h.users.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.Error(err.Error()))
		case errors.Is(err, services.ErrInvalidRole):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": user})
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid user ID"))
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	user, err := h.users.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Error(err.Error()))
		case errors.Is(err, services.ErrAdminDeactivate):
			return c.Status(fiber.StatusForbidden).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to update user"))
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid user ID"))
	}

	if err := h.users.Delete(id); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Error(err.Error()))
		case errors.Is(err, services.ErrAdminDelete):
			return c.Status(fiber.StatusForbidden).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to delete user"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "User deleted successfully"})
}

func (h *AdminHandler) AdjustCredits(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid user ID"))
	}

	var req dto.AdjustCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	user, changed, err := h.credits.Adjust(id, req.Credits, req.Description, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Error(err.Error()))
		case errors.Is(err, services.ErrInvalidCreditAmount),
			errors.Is(err, services.ErrNotMultipleOfFive),
			errors.Is(err, services.ErrInvalidAdjustAction),
			errors.Is(err, services.ErrInsufficientCredits):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
		case errors.Is(err, services.ErrCreditRoleRestricted):
			return c.Status(fiber.StatusForbidden).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to adjust credits"))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Credits updated successfully",
		"data": fiber.Map{
			"userId":  user.ID,
			"credits": user.Credits,
			"changed": changed,
		},
	})
}

// --- Pickups ---

func (h *AdminHandler) ListPickups(c *fiber.Ctx) error {
	status := c.Query("status")

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid date, expected YYYY-MM-DD"))
		}
		date = &parsed
	}

	pickups, err := h.pickups.ListAll(status, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch pickups"))
	}
	return c.JSON(fiber.Map{"success": true, "data": pickups})
}

func (h *AdminHandler) SchedulePickup(c *fiber.Ctx) error {
	var req dto.SchedulePickupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	pickup, err := h.pickups.Schedule(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrResidentNotFound), errors.Is(err, services.ErrCollectorNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Error(err.Error()))
		case errors.Is(err, services.ErrScheduleIncomplete), errors.Is(err, services.ErrInvalidCategory):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to schedule pickup"))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": pickup})
}

func (h *AdminHandler) AssignCollector(c *fiber.Ctx) error {
	pickupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid pickup ID"))
	}

	var req dto.AssignCollectorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	collectorID, err := uuid.Parse(req.CollectorID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid collector ID"))
	}

	pickup, err := h.pickups.Assign(pickupID, collectorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPickupNotFound), errors.Is(err, services.ErrCollectorNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Error(err.Error()))
		case errors.Is(err, services.ErrPickupEngaged):
			return c.Status(fiber.StatusConflict).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to assign collector"))
	}
	return c.JSON(fiber.Map{"success": true, "data": pickup})
}

func (h *AdminHandler) UnassignCollector(c *fiber.Ctx) error {
	pickupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid pickup ID"))
	}

	pickup, err := h.pickups.Unassign(pickupID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPickupNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Error(err.Error()))
		case errors.Is(err, services.ErrPickupEngaged):
			return c.Status(fiber.StatusConflict).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to unassign collector"))
	}
	return c.JSON(fiber.Map{"success": true, "data": pickup})
}

func (h *AdminHandler) SetPickupStatus(c *fiber.Ctx) error {
	pickupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid pickup ID"))
	}

	var req dto.AdminStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	pickup, err := h.pickups.SetStatusByAdmin(pickupID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPickupNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Error(err.Error()))
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to update pickup status"))
	}
	return c.JSON(fiber.Map{"success": true, "data": pickup})
}

// --- Stats ---

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.stats.Overview()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch stats"))
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}

func (h *AdminHandler) TopContributors(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	contributors, err := h.stats.TopContributors(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch top contributors"))
	}
	return c.JSON(fiber.Map{"success": true, "data": contributors})
}

// --- Partners ---

func (h *AdminHandler) ListPartners(c *fiber.Ctx) error {
	partners, err := h.partners.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch partners"))
	}
	return c.JSON(fiber.Map{"success": true, "data": partners})
}

func (h *AdminHandler) CreatePartner(c *fiber.Ctx) error {
	var req dto.PartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	partner, err := h.partners.Create(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": partner})
}

func (h *AdminHandler) UpdatePartner(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid partner ID"))
	}

	var req dto.PartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	partner, err := h.partners.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPartnerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Error(err.Error()))
		case errors.Is(err, services.ErrInvalidCreditsRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to update partner"))
	}
	return c.JSON(fiber.Map{"success": true, "data": partner})
}

func (h *AdminHandler) DeletePartner(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid partner ID"))
	}

	if err := h.partners.Delete(id); err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to delete partner"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Partner deleted successfully"})
}

// --- Settings ---

func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch settings"))
	}
	return c.JSON(fiber.Map{"success": true, "data": settings})
}

func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	settings, err := h.settings.Update(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRewardRate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to update settings"))
	}
	return c.JSON(fiber.Map{"success": true, "data": settings})
}

package handlers

import (
	"errors"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/middleware"
	"github.com/ecobin/ecobin-backend/internal/services"
	"github.com/ecobin/ecobin-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PickupHandler struct {
	pickups *services.PickupService
	store   *storage.ObjectStore // nil when object storage is not configured
}

func NewPickupHandler(pickups *services.PickupService, store *storage.ObjectStore) *PickupHandler {
	return &PickupHandler{pickups: pickups, store: store}
}

// Create handles the resident's multipart scheduling form, including the
// optional evidence photo.
func (h *PickupHandler) Create(c *fiber.Ctx) error {
	user := middleware.Account(c)

	input := dto.CreatePickupInput{
		Category:      c.FormValue("category"),
		PreferredTime: c.FormValue("preferredTime"),
		Description:   c.FormValue("description"),
	}
	if v := c.FormValue("weight"); v != "" {
		if w, err := strconv.ParseFloat(v, 64); err == nil {
			input.Weight = &w
		}
	}
	if v := c.FormValue("quantity"); v != "" {
		if q, err := strconv.Atoi(v); err == nil {
			input.Quantity = &q
		}
	}
	if v := c.FormValue("preferredDate"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			input.PreferredDate = d
		}
	}

	photo, err := h.uploadFormFile(c, "photo")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to upload photo"))
	}
	input.Photo = photo

	pickup, err := h.pickups.Create(user.ID, &input)
	if err != nil {
		if errors.Is(err, services.ErrScheduleIncomplete) || errors.Is(err, services.ErrInvalidCategory) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to process pickup request"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Pickup request created successfully",
		"data":    pickup,
	})
}

func (h *PickupHandler) My(c *fiber.Ctx) error {
	user := middleware.Account(c)
	pickups, err := h.pickups.MyPickups(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch my pickups"))
	}
	return c.JSON(fiber.Map{"success": true, "data": pickups})
}

func (h *PickupHandler) Assigned(c *fiber.Ctx) error {
	user := middleware.Account(c)
	pickups, err := h.pickups.AssignedPickups(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch assigned pickups"))
	}
	return c.JSON(fiber.Map{"success": true, "data": pickups})
}

// UpdateStatus is the collector-facing transition endpoint. Accepts either a
// multipart form (with proof photo) or a plain JSON body.
func (h *PickupHandler) UpdateStatus(c *fiber.Ctx) error {
	user := middleware.Account(c)

	pickupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid pickup ID"))
	}

	var input dto.CollectorStatusInput
	if form, ferr := c.MultipartForm(); ferr == nil && form != nil {
		input.Status = c.FormValue("status")
		input.Notes = c.FormValue("notes")
		proof, uerr := h.uploadFormFile(c, "proofPhoto")
		if uerr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to upload proof photo"))
		}
		input.ProofPhoto = proof
	} else {
		var body struct {
			Status string `json:"status"`
			Notes  string `json:"notes"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
		}
		input.Status = body.Status
		input.Notes = body.Notes
	}

	pickup, err := h.pickups.UpdateStatusByCollector(user.ID, pickupID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPickupNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Error(err.Error()))
		case errors.Is(err, services.ErrNotAssignedCollector):
			return c.Status(fiber.StatusForbidden).JSON(dto.Error(err.Error()))
		case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to update pickup status"))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Pickup status updated successfully",
		"data":    pickup,
	})
}

// uploadFormFile pushes an uploaded form file to object storage and returns
// the object key, or "" when the field is absent.
func (h *PickupHandler) uploadFormFile(c *fiber.Ctx, field string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil || fileHeader == nil {
		return "", nil
	}
	if h.store == nil {
		return "", nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	return h.store.Upload(c.Context(), objectName, f, fileHeader.Size, contentType)
}

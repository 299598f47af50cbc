package handlers

import (
	"errors"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/middleware"
	"github.com/ecobin/ecobin-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	user := middleware.Account(c)
	list, err := h.notifications.List(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch notifications"))
	}
	return c.JSON(fiber.Map{"success": true, "data": list})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	user := middleware.Account(c)
	count, err := h.notifications.UnreadCount(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to fetch unread count"))
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.UnreadCountResponse{Count: count}})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	user := middleware.Account(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid notification ID"))
	}

	n, err := h.notifications.MarkRead(user.ID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to update notification"))
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": n.ID, "isRead": n.IsRead}})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	user := middleware.Account(c)
	if err := h.notifications.MarkAllRead(user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to update notifications"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "All notifications marked as read"})
}

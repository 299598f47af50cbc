package handlers

import (
	"errors"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/middleware"
	"github.com/ecobin/ecobin-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	resp, err := h.auth.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
		}
		if errors.Is(err, services.ErrInvalidRole) ||
			errors.Is(err, services.ErrPasswordTooShort) ||
			errors.Is(err, services.ErrAddressRequired) ||
			errors.Is(err, services.ErrAdminFieldsRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to register user"))
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	resp, err := h.auth.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrAccountDeactivated) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Error(err.Error()))
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to login"))
	}
	return c.JSON(resp)
}

func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	resp, err := h.auth.AdminLogin(&req)
	if err != nil {
		if errors.Is(err, services.ErrAccountDeactivated) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Error(err.Error()))
		}
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrInvalidSecretKey) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Failed to login"))
	}
	return c.JSON(resp)
}

// Me returns the authenticated account loaded by the role middleware.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.Account(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Not authorized to access this resource"))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": dto.UserResponse{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Role:     user.Role,
			Address:  user.Address,
			Phone:    user.Phone,
			IsActive: user.IsActive,
			Credits:  user.Credits,
		},
	})
}

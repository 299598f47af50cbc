package middleware

import (
	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const accountKey = "account"

// RequireRole loads the authenticated user, rejects deactivated accounts and
// enforces role membership. With no roles given it only requires an active
// authenticated account. The loaded user is stored in locals for handlers.
func RequireRole(db *gorm.DB, roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Not authorized to access this resource"))
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("User not found"))
		}
		if !user.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.Error("Account is deactivated"))
		}
		if len(allowed) > 0 && !allowed[user.Role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.Error("Role not authorized to access this resource"))
		}

		c.Locals(accountKey, &user)
		return c.Next()
	}
}

// Account returns the user loaded by RequireRole, or nil.
func Account(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(accountKey).(*models.User)
	return user
}

package routes

import (
	"time"

	"github.com/ecobin/ecobin-backend/internal/config"
	"github.com/ecobin/ecobin-backend/internal/handlers"
	"github.com/ecobin/ecobin-backend/internal/middleware"
	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	pickupHandler *handlers.PickupHandler,
	creditHandler *handlers.CreditHandler,
	partnerHandler *handlers.PartnerHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	fileHandler *handlers.FileHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", handlers.Health)

	// Public redemption catalog
	api.Get("/partners", partnerHandler.List)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/admin/login", authHandler.AdminLogin)

	api.Get("/auth/me", middleware.JWTProtected(cfg), middleware.RequireRole(db), authHandler.Me)

	// Pickups
	pickups := api.Group("/pickups", middleware.JWTProtected(cfg))
	pickups.Post("/", middleware.RequireRole(db, models.RoleResident), pickupHandler.Create)
	pickups.Get("/my", middleware.RequireRole(db, models.RoleResident), pickupHandler.My)
	pickups.Get("/assigned", middleware.RequireRole(db, models.RoleCollector), pickupHandler.Assigned)
	pickups.Patch("/:id/status", middleware.RequireRole(db, models.RoleCollector), pickupHandler.UpdateStatus)

	// Credits
	credits := api.Group("/credits", middleware.JWTProtected(cfg),
		middleware.RequireRole(db, models.RoleResident, models.RoleCollector))
	credits.Get("/my", creditHandler.My)
	credits.Post("/redeem", creditHandler.Redeem)

	// Notifications — any authenticated account
	notifications := api.Group("/notifications", middleware.JWTProtected(cfg), middleware.RequireRole(db))
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)

	// Uploaded photos; token accepted in the query string for <img> tags
	files := api.Group("/files", middleware.JWTProtectedWithQuery(cfg), middleware.RequireRole(db))
	files.Get("/presigned/:filename", fileHandler.Presign)
	files.Get("/:filename", fileHandler.Serve)

	// Admin panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.RequireRole(db, models.RoleAdmin))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Patch("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Post("/users/:id/credits", adminHandler.AdjustCredits)

	admin.Get("/pickups", adminHandler.ListPickups)
	admin.Post("/pickups/schedule", adminHandler.SchedulePickup)
	admin.Patch("/pickups/:id/assign", adminHandler.AssignCollector)
	admin.Patch("/pickups/:id/unassign", adminHandler.UnassignCollector)
	admin.Patch("/pickups/:id/status", adminHandler.SetPickupStatus)

	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/top-contributors", adminHandler.TopContributors)

	admin.Get("/partners", adminHandler.ListPartners)
	admin.Post("/partners", adminHandler.CreatePartner)
	admin.Patch("/partners/:id", adminHandler.UpdatePartner)
	admin.Delete("/partners/:id", adminHandler.DeletePartner)

	admin.Get("/settings", adminHandler.GetSettings)
	admin.Patch("/settings", adminHandler.UpdateSettings)
}

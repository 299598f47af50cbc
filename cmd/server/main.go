package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ecobin/ecobin-backend/internal/config"
	"github.com/ecobin/ecobin-backend/internal/database"
	"github.com/ecobin/ecobin-backend/internal/handlers"
	"github.com/ecobin/ecobin-backend/internal/logging"
	"github.com/ecobin/ecobin-backend/internal/middleware"
	"github.com/ecobin/ecobin-backend/internal/routes"
	"github.com/ecobin/ecobin-backend/internal/services"
	"github.com/ecobin/ecobin-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Optional infrastructure: both degrade gracefully when unconfigured
	redisClient := storage.NewRedis(cfg)
	objectStore, err := storage.NewObjectStore(cfg)
	if err != nil {
		slog.Error("object storage unavailable, photo uploads disabled", "error", err)
		objectStore = nil
	}

	// Services
	settingsService := services.NewSettingsService(database.DB)
	notificationService := services.NewNotificationService(database.DB, redisClient)
	dispatcher := services.NewNotificationDispatcher(notificationService)
	creditService := services.NewCreditService(database.DB, settingsService)
	pickupService := services.NewPickupService(database.DB, creditService, dispatcher)
	authService := services.NewAuthService(database.DB, cfg)
	userService := services.NewUserService(database.DB)
	partnerService := services.NewPartnerService(database.DB)
	statsService := services.NewStatsService(database.DB)

	// Seed the redemption catalog and warm up the settings singleton
	if err := partnerService.SeedDefaults(); err != nil {
		slog.Error("partner seeding failed", "error", err)
	}
	if _, err := settingsService.Get(); err != nil {
		slog.Error("settings init failed", "error", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	pickupHandler := handlers.NewPickupHandler(pickupService, objectStore)
	creditHandler := handlers.NewCreditHandler(creditService)
	partnerHandler := handlers.NewPartnerHandler(partnerService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(userService, pickupService, creditService, partnerService, statsService, settingsService)
	fileHandler := handlers.NewFileHandler(objectStore)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, authHandler, pickupHandler, creditHandler, partnerHandler, notificationHandler, adminHandler, fileHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

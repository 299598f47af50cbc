package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecobin/ecobin-backend/internal/config"
	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/middleware"
	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/ecobin/ecobin-backend/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Pickup{}, &models.CreditTransaction{}, &models.Partner{}, &models.Settings{}, &models.Notification{}))

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	authHandler := NewAuthHandler(services.NewAuthService(db, cfg))

	app := fiber.New()
	app.Post("/api/auth/register", authHandler.Register)
	app.Post("/api/auth/login", authHandler.Login)
	app.Get("/api/auth/me", middleware.JWTProtected(cfg), middleware.RequireRole(db), authHandler.Me)
	app.Get("/api/admin/ping", middleware.JWTProtected(cfg), middleware.RequireRole(db, models.RoleAdmin),
		func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"success": true}) })
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}, token string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func getWithToken(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeAuth(t *testing.T, resp *http.Response) dto.AuthResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestRegisterLoginMeFlow(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", dto.RegisterRequest{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "secret123",
		Address:  "9 Elm Street",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	registered := decodeAuth(t, resp)
	assert.True(t, registered.Success)
	assert.NotEmpty(t, registered.Token)

	resp = postJSON(t, app, "/api/auth/login", dto.LoginRequest{
		Email:    "sam@example.com",
		Password: "secret123",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loggedIn := decodeAuth(t, resp)

	resp = getWithToken(t, app, "/api/auth/me", loggedIn.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var me struct {
		Success bool             `json:"success"`
		Data    dto.UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &me))
	assert.True(t, me.Success)
	assert.Equal(t, "sam@example.com", me.Data.Email)
}

func TestMeRejectsMissingOrBadToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := getWithToken(t, app, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = getWithToken(t, app, "/api/auth/me", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", dto.RegisterRequest{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "secret123",
		Address:  "9 Elm Street",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/login", dto.LoginRequest{
		Email:    "sam@example.com",
		Password: "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleEnforcement(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", dto.RegisterRequest{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "secret123",
		Address:  "9 Elm Street",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	registered := decodeAuth(t, resp)

	// A resident token cannot reach admin routes.
	resp = getWithToken(t, app, "/api/admin/ping", registered.Token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeactivatedAccountBlockedByMiddleware(t *testing.T) {
	app, db := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", dto.RegisterRequest{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "secret123",
		Address:  "9 Elm Street",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	registered := decodeAuth(t, resp)

	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", registered.User.ID).
		Update("is_active", false).Error)

	// Existing token stops working once the account is deactivated.
	resp = getWithToken(t, app, "/api/auth/me", registered.Token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

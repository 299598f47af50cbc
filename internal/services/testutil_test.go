package services

import (
	"testing"
	"time"

	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB returns an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Pickup{},
		&models.CreditTransaction{},
		&models.Partner{},
		&models.Settings{},
		&models.Notification{},
		&models.SystemLog{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, role string, credits int) *models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Name:     "Test " + role,
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		Role:     role,
		IsActive: true,
		Credits:  credits,
	}
	if role != models.RoleAdmin {
		user.Address = "12 Green Street"
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createPickup(t *testing.T, db *gorm.DB, residentID uuid.UUID, status string, mutate ...func(*models.Pickup)) *models.Pickup {
	t.Helper()

	pickup := models.Pickup{
		ID:            uuid.New(),
		ResidentID:    residentID,
		Category:      models.CategoryMobile,
		PreferredDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		PreferredTime: "morning",
		Status:        status,
	}
	for _, fn := range mutate {
		fn(&pickup)
	}
	require.NoError(t, db.Create(&pickup).Error)
	return &pickup
}

func createPartner(t *testing.T, db *gorm.DB, name string, price int, active bool) *models.Partner {
	t.Helper()

	partner := models.Partner{
		ID:              uuid.New(),
		Name:            name,
		Description:     "test partner",
		CreditsRequired: price,
		IsActive:        active,
	}
	require.NoError(t, db.Create(&partner).Error)
	return &partner
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

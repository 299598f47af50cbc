package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PickupLimits caps scheduling volume; stored as JSON inside Settings.
type PickupLimits struct {
	MaxPickupsPerDay       int `json:"maxPickupsPerDay"`
	MaxPickupsPerCollector int `json:"maxPickupsPerCollector"`
}

// Settings is the singleton platform configuration. Exactly one row has
// IsActive set; it is lazily created on first read.
type Settings struct {
	ID               uuid.UUID                        `gorm:"type:uuid;primaryKey" json:"id"`
	RewardRatePerKg  float64                          `gorm:"not null;default:1" json:"reward_rate_per_kg"`
	EWasteCategories datatypes.JSONSlice[string]      `json:"e_waste_categories"`
	PickupLimits     datatypes.JSONType[PickupLimits] `json:"pickup_limits"`
	RegionCoverage   datatypes.JSONSlice[string]      `json:"region_coverage"`
	IsActive         bool                             `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time                        `json:"created_at"`
	UpdatedAt        time.Time                        `json:"updated_at"`
}

// DefaultSettings returns the values used when the singleton is first created.
func DefaultSettings() Settings {
	return Settings{
		ID:              uuid.New(),
		RewardRatePerKg: 1,
		EWasteCategories: datatypes.NewJSONSlice([]string{
			CategoryMobile, CategoryLaptop, CategoryTV,
			CategoryComputer, CategoryMixed, CategoryOther,
		}),
		PickupLimits: datatypes.NewJSONType(PickupLimits{
			MaxPickupsPerDay:       10,
			MaxPickupsPerCollector: 5,
		}),
		RegionCoverage: datatypes.NewJSONSlice([]string{}),
		IsActive:       true,
	}
}

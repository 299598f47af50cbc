package services

import (
	"errors"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrInvalidRewardRate = errors.New("reward rate must be non-negative")

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the active settings singleton, creating it with defaults on
// first read.
func (s *SettingsService) Get() (*models.Settings, error) {
	var settings models.Settings
	err := s.db.Where("is_active = ?", true).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultSettings()
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *SettingsService) Update(req *dto.UpdateSettingsRequest) (*models.Settings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	if req.RewardRatePerKg != nil {
		if *req.RewardRatePerKg < 0 {
			return nil, ErrInvalidRewardRate
		}
		settings.RewardRatePerKg = *req.RewardRatePerKg
	}
	if req.EWasteCategories != nil {
		settings.EWasteCategories = datatypes.NewJSONSlice(req.EWasteCategories)
	}
	if req.PickupLimits != nil {
		settings.PickupLimits = datatypes.NewJSONType(*req.PickupLimits)
	}
	if req.RegionCoverage != nil {
		settings.RegionCoverage = datatypes.NewJSONSlice(req.RegionCoverage)
	}

	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// RewardRate returns the configured reward rate per kg, falling back to the
// default when settings cannot be read.
func (s *SettingsService) RewardRate() float64 {
	settings, err := s.Get()
	if err != nil {
		return 1
	}
	return settings.RewardRatePerKg
}

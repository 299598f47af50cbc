package services

import (
	"errors"
	"log/slog"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidCreditsRequired = errors.New("creditsRequired must be at least 1")

type PartnerService struct {
	db *gorm.DB
}

func NewPartnerService(db *gorm.DB) *PartnerService {
	return &PartnerService{db: db}
}

// ListActive is the public redemption catalog, sorted by name.
func (s *PartnerService) ListActive() ([]models.Partner, error) {
	var partners []models.Partner
	err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&partners).Error
	return partners, err
}

// ListAll is the admin view including inactive entries, newest first.
func (s *PartnerService) ListAll() ([]models.Partner, error) {
	var partners []models.Partner
	err := s.db.Order("created_at DESC").Find(&partners).Error
	return partners, err
}

func (s *PartnerService) Create(req *dto.PartnerRequest) (*models.Partner, error) {
	if req.Name == "" {
		return nil, errors.New("partner name is required")
	}
	if req.CreditsRequired < 1 {
		return nil, ErrInvalidCreditsRequired
	}

	partner := models.Partner{
		ID:              uuid.New(),
		Name:            req.Name,
		Description:     req.Description,
		CreditsRequired: req.CreditsRequired,
		IsActive:        true,
	}
	if err := s.db.Create(&partner).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (s *PartnerService) Update(id uuid.UUID, req *dto.PartnerRequest) (*models.Partner, error) {
	var partner models.Partner
	if err := s.db.First(&partner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.CreditsRequired != 0 {
		if req.CreditsRequired < 1 {
			return nil, ErrInvalidCreditsRequired
		}
		updates["credits_required"] = req.CreditsRequired
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&partner).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if err := s.db.First(&partner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (s *PartnerService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Partner{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPartnerNotFound
	}
	return nil
}

var defaultPartners = []models.Partner{
	{Name: "EcoStore - Reusable Water Bottle", Description: "Redeem for a premium stainless steel reusable water bottle. Help reduce plastic waste!", CreditsRequired: 50},
	{Name: "GreenLife - Bamboo Cutlery Set", Description: "Get an eco-friendly bamboo cutlery set with carrying case. Perfect for sustainable living!", CreditsRequired: 75},
	{Name: "EcoBag - Organic Cotton Tote Bag", Description: "Stylish and sustainable organic cotton tote bag. Perfect for shopping and daily use!", CreditsRequired: 60},
	{Name: "EcoStore - Stainless Steel Straw Set", Description: "Premium reusable stainless steel straws with cleaning brush. Say goodbye to plastic straws!", CreditsRequired: 40},
	{Name: "EcoStore - Glass Food Storage Containers", Description: "Set of 4 eco-friendly glass food storage containers with bamboo lids. Perfect for meal prep!", CreditsRequired: 80},
	{Name: "GreenLife - Bamboo Toothbrush Set", Description: "Pack of 4 biodegradable bamboo toothbrushes with soft bristles. Sustainable oral care!", CreditsRequired: 45},
	{Name: "GreenLife - Organic Cotton Reusable Bags", Description: "Set of 5 organic cotton reusable shopping bags. Durable and washable for everyday use!", CreditsRequired: 55},
}

// SeedDefaults inserts the default redemption catalog at boot, skipping
// entries that already exist by name.
func (s *PartnerService) SeedDefaults() error {
	var existingNames []string
	if err := s.db.Model(&models.Partner{}).Pluck("name", &existingNames).Error; err != nil {
		return err
	}
	existing := make(map[string]bool, len(existingNames))
	for _, name := range existingNames {
		existing[name] = true
	}

	seeded := 0
	for _, p := range defaultPartners {
		if existing[p.Name] {
			continue
		}
		partner := p
		partner.ID = uuid.New()
		partner.IsActive = true
		if err := s.db.Create(&partner).Error; err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		slog.Info("seeded default partners", "count", seeded)
	}
	return nil
}

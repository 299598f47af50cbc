package services

import (
	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/models"
	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

func (s *StatsService) Overview() (*dto.StatsResponse, error) {
	resp := &dto.StatsResponse{PickupStatus: map[string]int64{}}

	if err := s.db.Model(&models.Pickup{}).Count(&resp.TotalPickups).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Pickup{}).
		Where("status = ?", models.StatusCompleted).
		Count(&resp.CompletedPickups).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleResident, true).
		Count(&resp.TotalResidents).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleCollector, true).
		Count(&resp.TotalCollectors).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).
		Where("is_active = ?", true).
		Count(&resp.ActiveUsers).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Pickup{}).
		Select("COALESCE(SUM(weight), 0)").
		Where("status = ? AND weight > 0", models.StatusCompleted).
		Scan(&resp.TotalWaste).Error; err != nil {
		return nil, err
	}

	var ledger []struct {
		Type  string
		Total int
	}
	if err := s.db.Model(&models.CreditTransaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Group("type").
		Scan(&ledger).Error; err != nil {
		return nil, err
	}
	for _, row := range ledger {
		switch row.Type {
		case models.TxEarn:
			resp.CreditSummary.Earned = row.Total
		case models.TxRedeem:
			resp.CreditSummary.Redeemed = row.Total
		}
	}
	resp.CreditSummary.Net = resp.CreditSummary.Earned - resp.CreditSummary.Redeemed
	resp.TotalCredits = resp.CreditSummary.Net

	var breakdown []struct {
		Status string
		Count  int64
	}
	if err := s.db.Model(&models.Pickup{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&breakdown).Error; err != nil {
		return nil, err
	}
	for _, row := range breakdown {
		resp.PickupStatus[row.Status] = row.Count
	}

	return resp, nil
}

func (s *StatsService) TopContributors(limit int) (*dto.TopContributorsResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	resp := &dto.TopContributorsResponse{
		TopByCredits: []dto.ContributorByCredits{},
		TopByPickups: []dto.ContributorByPickups{},
	}

	if err := s.db.Model(&models.User{}).
		Select("name, email, role, credits").
		Where("role IN ? AND is_active = ?", []string{models.RoleResident, models.RoleCollector}, true).
		Order("credits DESC").
		Limit(limit).
		Scan(&resp.TopByCredits).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Pickup{}).
		Select("users.name, users.email, users.role, COUNT(*) AS pickup_count, COALESCE(SUM(pickups.weight), 0) AS total_weight").
		Joins("JOIN users ON users.id = pickups.resident_id").
		Where("pickups.status = ?", models.StatusCompleted).
		Group("users.id, users.name, users.email, users.role").
		Order("pickup_count DESC").
		Limit(limit).
		Scan(&resp.TopByPickups).Error; err != nil {
		return nil, err
	}

	return resp, nil
}

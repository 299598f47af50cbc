package dto

import "github.com/ecobin/ecobin-backend/internal/models"

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type UpdateUserRequest struct {
	IsActive *bool `json:"isActive"`
	Credits  *int  `json:"credits"`
}

type PartnerRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	CreditsRequired int    `json:"creditsRequired"`
	IsActive        *bool  `json:"isActive"`
}

type UpdateSettingsRequest struct {
	RewardRatePerKg  *float64             `json:"rewardRatePerKg"`
	EWasteCategories []string             `json:"eWasteCategories"`
	PickupLimits     *models.PickupLimits `json:"pickupLimits"`
	RegionCoverage   []string             `json:"regionCoverage"`
}

type CreditSummary struct {
	Earned   int `json:"earned"`
	Redeemed int `json:"redeemed"`
	Net      int `json:"net"`
}

type StatsResponse struct {
	TotalPickups     int64            `json:"totalPickups"`
	CompletedPickups int64            `json:"completedPickups"`
	TotalWaste       float64          `json:"totalWaste"`
	TotalCredits     int              `json:"totalCredits"`
	ActiveUsers      int64            `json:"activeUsers"`
	TotalResidents   int64            `json:"totalResidents"`
	TotalCollectors  int64            `json:"totalCollectors"`
	CreditSummary    CreditSummary    `json:"creditSummary"`
	PickupStatus     map[string]int64 `json:"pickupStatus"`
}

type ContributorByCredits struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Credits int    `json:"credits"`
}

type ContributorByPickups struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	PickupCount int64   `json:"pickupCount"`
	TotalWeight float64 `json:"totalWeight"`
}

type TopContributorsResponse struct {
	TopByCredits []ContributorByCredits `json:"topByCredits"`
	TopByPickups []ContributorByPickups `json:"topByPickups"`
}

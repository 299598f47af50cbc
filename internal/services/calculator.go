package services

import (
	"math"

	"github.com/ecobin/ecobin-backend/internal/models"
)

// Base credit amounts per e-waste category.
var categoryCredits = map[string]int{
	models.CategoryMobile:   10,
	models.CategoryLaptop:   50,
	models.CategoryTV:       30,
	models.CategoryComputer: 40,
	models.CategoryMixed:    20,
	models.CategoryOther:    15,
}

const (
	defaultCategoryCredits = 15
	creditsPerItem         = 5
)

// CalculateCredits converts a pickup's category, optional weight and optional
// quantity into an earned-credit amount. Weight-based credits use the
// configured reward rate; quantity only counts when no weight was recorded.
// Pure function; callers persist the result through the credit service.
func CalculateCredits(category string, weight *float64, quantity *int, rewardRatePerKg float64) int {
	credits, ok := categoryCredits[category]
	if !ok {
		credits = defaultCategoryCredits
	}

	if weight != nil && *weight > 0 {
		credits += int(math.Floor(*weight * rewardRatePerKg))
	} else if quantity != nil && *quantity > 0 {
		credits += *quantity * creditsPerItem
	}

	return credits
}

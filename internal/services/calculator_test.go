package services

import (
	"testing"

	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCalculateCredits(t *testing.T) {
	tests := []struct {
		name     string
		category string
		weight   *float64
		quantity *int
		rate     float64
		want     int
	}{
		{name: "laptop with quantity", category: models.CategoryLaptop, quantity: ptrInt(2), rate: 1, want: 60},
		{name: "mobile with fractional weight", category: models.CategoryMobile, weight: ptrFloat(4.2), rate: 2, want: 18},
		{name: "tv base only", category: models.CategoryTV, rate: 1, want: 30},
		{name: "computer with weight", category: models.CategoryComputer, weight: ptrFloat(10), rate: 1, want: 50},
		{name: "mixed with quantity", category: models.CategoryMixed, quantity: ptrInt(3), rate: 1, want: 35},
		{name: "unknown category falls back", category: "fridge", rate: 1, want: 15},
		{name: "weight wins over quantity", category: models.CategoryMobile, weight: ptrFloat(2), quantity: ptrInt(4), rate: 1, want: 12},
		{name: "zero weight falls through to quantity", category: models.CategoryMobile, weight: ptrFloat(0), quantity: ptrInt(4), rate: 1, want: 30},
		{name: "zero rate keeps base", category: models.CategoryLaptop, weight: ptrFloat(8), rate: 0, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCredits(tt.category, tt.weight, tt.quantity, tt.rate)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateCreditsProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	categories := gen.OneConstOf(
		models.CategoryMobile, models.CategoryLaptop, models.CategoryTV,
		models.CategoryComputer, models.CategoryMixed, models.CategoryOther,
	)

	properties.Property("always at least the category base", prop.ForAll(
		func(category string, weight float64, quantity int, rate float64) bool {
			got := CalculateCredits(category, &weight, &quantity, rate)
			return got >= categoryCredits[category]
		},
		categories,
		gen.Float64Range(0, 1000),
		gen.IntRange(0, 100),
		gen.Float64Range(0, 50),
	))

	properties.Property("more weight never earns fewer credits", prop.ForAll(
		func(category string, w1, w2, rate float64) bool {
			lo, hi := w1, w2
			if lo > hi {
				lo, hi = hi, lo
			}
			return CalculateCredits(category, &lo, nil, rate) <= CalculateCredits(category, &hi, nil, rate)
		},
		categories,
		gen.Float64Range(0.1, 1000),
		gen.Float64Range(0.1, 1000),
		gen.Float64Range(0, 50),
	))

	properties.TestingRun(t)
}

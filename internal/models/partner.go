package models

import (
	"time"

	"github.com/google/uuid"
)

// Partner is a redemption catalog entry offered at a fixed credit price.
type Partner struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"not null;size:255;index" json:"name"`
	Description     string    `gorm:"size:1000" json:"description"`
	CreditsRequired int       `gorm:"not null" json:"credits_required"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

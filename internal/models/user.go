package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleResident  = "resident"
	RoleCollector = "collector"
	RoleAdmin     = "admin"
)

// User covers residents, collectors and admins. Credits is only written
// through ledger-producing operations in the credit service.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Address   string         `gorm:"size:500" json:"address,omitempty"`
	Phone     string         `gorm:"size:50" json:"phone,omitempty"`
	SecretKey string         `json:"-"`
	Role      string         `gorm:"size:20;not null;default:'resident';index" json:"role"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	Credits   int            `gorm:"not null;default:0" json:"credits"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleResident, RoleCollector, RoleAdmin:
		return true
	}
	return false
}

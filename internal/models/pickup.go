package models

import (
	"time"

	"github.com/google/uuid"
)

// Pickup statuses. The lifecycle is
// pending -> assigned -> accepted -> reached -> in_progress -> completed|rejected,
// with pending reachable again only via an admin reset.
const (
	StatusPending    = "pending"
	StatusAssigned   = "assigned"
	StatusAccepted   = "accepted"
	StatusReached    = "reached"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusRejected   = "rejected"
)

// E-waste categories.
const (
	CategoryMobile   = "mobile"
	CategoryLaptop   = "laptop"
	CategoryTV       = "tv"
	CategoryComputer = "computer"
	CategoryMixed    = "mixed"
	CategoryOther    = "other"
)

type Pickup struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ResidentID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"resident_id"`
	CollectorID   *uuid.UUID `gorm:"type:uuid;index" json:"collector_id"`
	Category      string     `gorm:"size:20;not null" json:"category"`
	Weight        *float64   `json:"weight"`
	Quantity      *int       `json:"quantity"`
	Photo         string     `gorm:"size:500" json:"photo,omitempty"`
	PreferredDate time.Time  `gorm:"not null" json:"preferred_date"`
	PreferredTime string     `gorm:"size:50;not null" json:"preferred_time"`
	Description   string     `gorm:"size:1000" json:"description,omitempty"`
	Status        string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ProofPhoto    string     `gorm:"size:500" json:"proof_photo,omitempty"`
	Notes         string     `gorm:"size:1000" json:"notes,omitempty"`
	CreditsEarned int        `gorm:"not null;default:0" json:"credits_earned"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Resident  User  `gorm:"foreignKey:ResidentID" json:"-"`
	Collector *User `gorm:"foreignKey:CollectorID" json:"-"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusAssigned, StatusAccepted, StatusReached,
		StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryMobile, CategoryLaptop, CategoryTV, CategoryComputer,
		CategoryMixed, CategoryOther:
		return true
	}
	return false
}

// TerminalStatus reports whether no further collector transitions are
// permitted (admin reset excepted).
func TerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusRejected
}

// Engaged reports whether the assigned collector has actively engaged with
// the pickup, after which reassignment is blocked without a reset.
func Engaged(status string) bool {
	switch status {
	case StatusAccepted, StatusReached, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotifyPickupAssigned     = "pickup_assigned"
	NotifyPickupStatusUpdate = "pickup_status_update"
	NotifyCreditsEarned      = "credits_earned"
	NotifyPickupCompleted    = "pickup_completed"
	NotifySystem             = "system"
)

// Notification is a user-addressed event record created as a side effect of
// pickup status changes. Only IsRead is ever mutated.
type Notification struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_user_read" json:"user_id"`
	Type            string     `gorm:"size:30;not null" json:"type"`
	Title           string     `gorm:"not null;size:255" json:"title"`
	Message         string     `gorm:"not null;size:1000" json:"message"`
	RelatedPickupID *uuid.UUID `gorm:"type:uuid" json:"related_pickup_id,omitempty"`
	IsRead          bool       `gorm:"not null;default:false;index:idx_notifications_user_read" json:"is_read"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`

	RelatedPickup *Pickup `gorm:"foreignKey:RelatedPickupID" json:"-"`
}

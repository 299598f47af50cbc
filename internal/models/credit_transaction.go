package models

import (
	"time"

	"github.com/google/uuid"
)

// Ledger entry types.
const (
	TxEarn   = "earn"
	TxRedeem = "redeem"
)

// CreditTransaction is an immutable ledger entry. The sum of a user's earn
// minus redeem amounts reconciles with User.Credits; both are written in the
// same database transaction by the credit service.
type CreditTransaction struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        string     `gorm:"size:10;not null" json:"type"`
	Amount      int        `gorm:"not null" json:"amount"`
	Description string     `gorm:"size:500" json:"description"`
	PickupID    *uuid.UUID `gorm:"type:uuid" json:"pickup_id,omitempty"`
	PartnerID   *uuid.UUID `gorm:"type:uuid" json:"partner_id,omitempty"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`

	User    User     `gorm:"foreignKey:UserID" json:"-"`
	Pickup  *Pickup  `gorm:"foreignKey:PickupID" json:"-"`
	Partner *Partner `gorm:"foreignKey:PartnerID" json:"-"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationPickupRef struct {
	Category string `json:"category"`
	Status   string `json:"status"`
}

type NotificationResponse struct {
	ID            uuid.UUID              `json:"id"`
	Type          string                 `json:"type"`
	Title         string                 `json:"title"`
	Message       string                 `json:"message"`
	RelatedPickup *NotificationPickupRef `json:"related_pickup"`
	IsRead        bool                   `json:"is_read"`
	CreatedAt     time.Time              `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

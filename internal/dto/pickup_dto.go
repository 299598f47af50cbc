package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreatePickupInput carries fields parsed from the multipart create form.
type CreatePickupInput struct {
	Category      string
	Weight        *float64
	Quantity      *int
	Photo         string
	PreferredDate time.Time
	PreferredTime string
	Description   string
}

// CollectorStatusInput carries a collector-facing status update, optionally
// with notes and a proof photo object key.
type CollectorStatusInput struct {
	Status     string
	Notes      string
	ProofPhoto string
}

type AssignCollectorRequest struct {
	CollectorID string `json:"collectorId"`
}

type AdminStatusRequest struct {
	Status string `json:"status"`
}

type SchedulePickupRequest struct {
	ResidentID    string   `json:"residentId"`
	Category      string   `json:"category"`
	Weight        *float64 `json:"weight"`
	Quantity      *int     `json:"quantity"`
	PreferredDate string   `json:"preferredDate"`
	PreferredTime string   `json:"preferredTime"`
	Description   string   `json:"description"`
	CollectorID   string   `json:"collectorId"`
}

// UserSummary is the joined resident/collector display projection.
type UserSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Address string    `json:"address,omitempty"`
}

type PickupResponse struct {
	ID            uuid.UUID    `json:"id"`
	Category      string       `json:"category"`
	Weight        *float64     `json:"weight"`
	Quantity      *int         `json:"quantity"`
	Photo         string       `json:"photo,omitempty"`
	PreferredDate time.Time    `json:"preferred_date"`
	PreferredTime string       `json:"preferred_time"`
	Description   string       `json:"description,omitempty"`
	Status        string       `json:"status"`
	ProofPhoto    string       `json:"proof_photo,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	CreditsEarned int          `json:"credits_earned"`
	CreatedAt     time.Time    `json:"created_at"`
	Resident      *UserSummary `json:"resident,omitempty"`
	Collector     *UserSummary `json:"collector,omitempty"`
}

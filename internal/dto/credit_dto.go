package dto

import "time"

type RedeemRequest struct {
	PartnerID string `json:"partnerId"`
	Credits   int    `json:"credits"`
}

type AdjustCreditsRequest struct {
	Credits     int    `json:"credits"`
	Description string `json:"description"`
	Action      string `json:"action"` // "add" or "deduct"
}

type TransactionPickupRef struct {
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}

type TransactionPartnerRef struct {
	Name string `json:"name"`
}

type TransactionResponse struct {
	Type        string                 `json:"type"`
	Amount      int                    `json:"amount"`
	Description string                 `json:"description"`
	Date        time.Time              `json:"date"`
	Pickup      *TransactionPickupRef  `json:"pickup"`
	Partner     *TransactionPartnerRef `json:"partner"`
}

type CreditsResponse struct {
	Balance      int                   `json:"balance"`
	Transactions []TransactionResponse `json:"transactions"`
}

type RedeemResponse struct {
	RemainingCredits int `json:"remainingCredits"`
}

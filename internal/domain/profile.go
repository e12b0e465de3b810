package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserProfile is keyed by wallet address; there are no passwords.
type UserProfile struct {
	Address     string    `json:"address"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PushToken   string    `json:"push_token,omitempty"`
	JoinedOn    time.Time `json:"joined_on"`
	Rating      float64   `json:"rating"`
	ReviewCount int32     `json:"review_count"`
}

type ProfileStats struct {
	TotalRentals     int32           `json:"total_rentals"`
	TotalListings    int32           `json:"total_listings"`
	TotalCarbonSaved float64         `json:"total_carbon_saved"`
	TotalEarned      decimal.Decimal `json:"total_earned"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
}

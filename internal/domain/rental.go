package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusOverdue   RentalStatus = "OVERDUE"
)

// Valid reports whether s is one of the known rental statuses.
func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusActive, RentalStatusCompleted, RentalStatusOverdue:
		return true
	}
	return false
}

// ListingTerms are the pricing facts a quote is computed from.
type ListingTerms struct {
	DailyPrice  decimal.Decimal `json:"daily_price"`
	WeeklyPrice decimal.Decimal `json:"weekly_price"`
}

// RentalQuote is derived on demand and never stored.
type RentalQuote struct {
	Days          int             `json:"days"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	FeeAmount     decimal.Decimal `json:"fee_amount"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	Total         decimal.Decimal `json:"total"`
}

type Rental struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	// Price snapshot captured from the listing at rent time.
	DailyPrice    decimal.Decimal `json:"daily_price"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	Status        RentalStatus    `json:"status"`
	RenterAddress string          `json:"renter_address"`
	OwnerAddress  string          `json:"owner_address"`
	CarbonSavedKg float64         `json:"carbon_saved_kg"`
	EscrowTxHash  string          `json:"escrow_tx_hash"`
	CreatedOn     time.Time       `json:"created_on"`
	UpdatedOn     time.Time       `json:"updated_on"`
}

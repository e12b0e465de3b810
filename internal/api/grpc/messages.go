package grpc

import (
	"github.com/shopspring/decimal"

	"fashionswap-backend/internal/domain"
)

type QuoteRequest struct {
	ItemID string `json:"item_id"`
	Days   int32  `json:"days"`
}

type QuoteResponse struct {
	ItemID string             `json:"item_id"`
	Quote  domain.RentalQuote `json:"quote"`
}

type ListItemRequest struct {
	Name          string               `json:"name"`
	Brand         string               `json:"brand"`
	Category      string               `json:"category"`
	Size          string               `json:"size"`
	DailyPrice    decimal.Decimal      `json:"daily_price"`
	WeeklyPrice   decimal.Decimal      `json:"weekly_price"`
	ImageURL      string               `json:"image_url"`
	CarbonSavedKg float64              `json:"carbon_saved_kg"`
	Description   string               `json:"description"`
	Condition     domain.ItemCondition `json:"condition"`
	Location      string               `json:"location"`
}

type GetListingRequest struct {
	ID string `json:"id"`
}

type ListingResponse struct {
	Listing *domain.Listing `json:"listing"`
}

type SearchListingsRequest struct {
	Query         string `json:"query"`
	Category      string `json:"category"`
	Brand         string `json:"brand"`
	Size          string `json:"size"`
	AvailableOnly bool   `json:"available_only"`
	Page          int32  `json:"page"`
	PageSize      int32  `json:"page_size"`
}

type SearchListingsResponse struct {
	Listings   []domain.Listing `json:"listings"`
	TotalCount int32            `json:"total_count"`
}

type RentItemRequest struct {
	ItemID    string `json:"item_id"`
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD, defaults to today
	Days      int32  `json:"days"`
}

type RentItemResponse struct {
	Rental *domain.Rental     `json:"rental"`
	Quote  domain.RentalQuote `json:"quote"`
}

type GetRentalRequest struct {
	RentalID string `json:"rental_id"`
}

type RentalResponse struct {
	Rental *domain.Rental `json:"rental"`
}

type ListRentalsRequest struct {
	Status   domain.RentalStatus `json:"status,omitempty"`
	Page     int32               `json:"page"`
	PageSize int32               `json:"page_size"`
}

type ListRentalsResponse struct {
	Rentals    []domain.Rental `json:"rentals"`
	TotalCount int32           `json:"total_count"`
}

type ReturnItemRequest struct {
	RentalID string `json:"rental_id"`
}

type ReturnItemResponse struct {
	Rental        *domain.Rental  `json:"rental"`
	DepositRefund decimal.Decimal `json:"deposit_refund"`
}

type GetProfileRequest struct{}

type ProfileResponse struct {
	Profile *domain.UserProfile  `json:"profile"`
	Stats   *domain.ProfileStats `json:"stats,omitempty"`
}

type UpdateProfileRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	PushToken string `json:"push_token"`
}

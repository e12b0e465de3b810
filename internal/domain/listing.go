package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemCondition string

const (
	ItemConditionNew     ItemCondition = "New"
	ItemConditionLikeNew ItemCondition = "Like New"
	ItemConditionGood    ItemCondition = "Good"
	ItemConditionFair    ItemCondition = "Fair"
)

func (c ItemCondition) Valid() bool {
	switch c {
	case ItemConditionNew, ItemConditionLikeNew, ItemConditionGood, ItemConditionFair:
		return true
	}
	return false
}

type Listing struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	Size          string          `json:"size"`
	DailyPrice    decimal.Decimal `json:"daily_price"`
	WeeklyPrice   decimal.Decimal `json:"weekly_price"`
	ImageURL      string          `json:"image_url"`
	CarbonSavedKg float64         `json:"carbon_saved_kg"`
	Description   string          `json:"description"`
	Condition     ItemCondition   `json:"condition"`
	OwnerAddress  string          `json:"owner_address"`
	Available     bool            `json:"available"`
	Location      string          `json:"location"`
	CreatedOn     time.Time       `json:"created_on"`
}

// Terms returns the pricing pair used for quoting this listing.
func (l *Listing) Terms() ListingTerms {
	return ListingTerms{DailyPrice: l.DailyPrice, WeeklyPrice: l.WeeklyPrice}
}

// ListingFilter narrows a catalog search. Empty fields match everything.
type ListingFilter struct {
	Query         string `json:"query"`
	Category      string `json:"category"`
	Brand         string `json:"brand"`
	Size          string `json:"size"`
	AvailableOnly bool   `json:"available_only"`
	Page          int32  `json:"page"`
	PageSize      int32  `json:"page_size"`
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"fashionswap-backend/internal/domain"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrListingUnavailable = errors.New("listing is not available")
	// ErrConcurrentUpdate means the rental changed between read and write;
	// the caller may retry.
	ErrConcurrentUpdate = errors.New("rental was modified concurrently")
)

type ListingService interface {
	ListItem(ctx context.Context, ownerAddress string, listing *domain.Listing) (*domain.Listing, error)
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SearchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, int32, error)
	Quote(ctx context.Context, itemID string, days int) (*domain.Listing, domain.RentalQuote, error)
}

type RentalService interface {
	RentItem(ctx context.Context, renterAddress, itemID, startDate string, days int) (*domain.Rental, domain.RentalQuote, error)
	GetRental(ctx context.Context, address, rentalID string) (*domain.Rental, error)
	ListRentals(ctx context.Context, address string, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
	ListLendings(ctx context.Context, address string, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
	ReturnItem(ctx context.Context, address, rentalID string) (*domain.Rental, decimal.Decimal, error) // returns rental, refunded deposit
	ProcessDailyPayment(ctx context.Context, rentalID string) (*domain.Rental, decimal.Decimal, error) // returns rental, amount paid
}

type ProfileService interface {
	GetProfile(ctx context.Context, address string) (*domain.UserProfile, *domain.ProfileStats, error)
	UpdateProfile(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error)
}

type EmailService interface {
	SendRentalNotification(ctx context.Context, email, ownerName, itemName string, quote domain.RentalQuote, start, end time.Time) error
	SendReturnConfirmation(ctx context.Context, email, renterName, itemName string, refund decimal.Decimal) error
	SendOverdueReminder(ctx context.Context, email, renterName, itemName string, endDate time.Time, daysOverdue int) error
}

type PushService interface {
	SendOverdueReminder(ctx context.Context, token, itemName string, daysOverdue int) error
}

// Clock is injected into services that derive rental state.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

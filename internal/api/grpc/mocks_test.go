package grpc_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"fashionswap-backend/internal/domain"
)

type mockListingService struct {
	mock.Mock
}

func (m *mockListingService) ListItem(ctx context.Context, ownerAddress string, listing *domain.Listing) (*domain.Listing, error) {
	args := m.Called(ctx, ownerAddress, listing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *mockListingService) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *mockListingService) SearchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Listing), args.Get(1).(int32), args.Error(2)
}
func (m *mockListingService) Quote(ctx context.Context, itemID string, days int) (*domain.Listing, domain.RentalQuote, error) {
	args := m.Called(ctx, itemID, days)
	if args.Get(0) == nil {
		return nil, domain.RentalQuote{}, args.Error(2)
	}
	return args.Get(0).(*domain.Listing), args.Get(1).(domain.RentalQuote), args.Error(2)
}

type mockRentalService struct {
	mock.Mock
}

func (m *mockRentalService) RentItem(ctx context.Context, renterAddress, itemID, startDate string, days int) (*domain.Rental, domain.RentalQuote, error) {
	args := m.Called(ctx, renterAddress, itemID, startDate, days)
	if args.Get(0) == nil {
		return nil, domain.RentalQuote{}, args.Error(2)
	}
	return args.Get(0).(*domain.Rental), args.Get(1).(domain.RentalQuote), args.Error(2)
}
func (m *mockRentalService) GetRental(ctx context.Context, address, rentalID string) (*domain.Rental, error) {
	args := m.Called(ctx, address, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *mockRentalService) ListRentals(ctx context.Context, address string, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, address, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *mockRentalService) ListLendings(ctx context.Context, address string, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, address, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *mockRentalService) ReturnItem(ctx context.Context, address, rentalID string) (*domain.Rental, decimal.Decimal, error) {
	args := m.Called(ctx, address, rentalID)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Rental), args.Get(1).(decimal.Decimal), args.Error(2)
}
func (m *mockRentalService) ProcessDailyPayment(ctx context.Context, rentalID string) (*domain.Rental, decimal.Decimal, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Rental), args.Get(1).(decimal.Decimal), args.Error(2)
}

type mockProfileService struct {
	mock.Mock
}

func (m *mockProfileService) GetProfile(ctx context.Context, address string) (*domain.UserProfile, *domain.ProfileStats, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.UserProfile), args.Get(1).(*domain.ProfileStats), args.Error(2)
}
func (m *mockProfileService) UpdateProfile(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

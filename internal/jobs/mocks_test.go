package jobs

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/repository"
)

type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	return m.Called(ctx, rental).Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental, paidBefore decimal.Decimal) error {
	return m.Called(ctx, rental, paidBefore).Error(0)
}
func (m *MockRentalRepo) ListByRenter(ctx context.Context, q repository.RentalQuery) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByOwner(ctx context.Context, q repository.RentalQuery) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListOpen(ctx context.Context, afterID string, limit int) ([]domain.Rental, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	return m.Called(ctx, listing).Error(0)
}
func (m *MockListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepo) SetAvailable(ctx context.Context, id string, available bool) error {
	return m.Called(ctx, id, available).Error(0)
}
func (m *MockListingRepo) Search(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Listing), args.Get(1).(int32), args.Error(2)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockProfileRepo) GetByAddress(ctx context.Context, address string) (*domain.UserProfile, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockProfileRepo) GetStats(ctx context.Context, address string) (*domain.ProfileStats, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfileStats), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalNotification(ctx context.Context, email, ownerName, itemName string, quote domain.RentalQuote, start, end time.Time) error {
	return m.Called(ctx, email, ownerName, itemName, quote, start, end).Error(0)
}
func (m *MockEmailService) SendReturnConfirmation(ctx context.Context, email, renterName, itemName string, refund decimal.Decimal) error {
	return m.Called(ctx, email, renterName, itemName, refund).Error(0)
}
func (m *MockEmailService) SendOverdueReminder(ctx context.Context, email, renterName, itemName string, endDate time.Time, daysOverdue int) error {
	return m.Called(ctx, email, renterName, itemName, endDate, daysOverdue).Error(0)
}

type MockPushService struct {
	mock.Mock
}

func (m *MockPushService) SendOverdueReminder(ctx context.Context, token, itemName string, daysOverdue int) error {
	return m.Called(ctx, token, itemName, daysOverdue).Error(0)
}

// MockRentalService only implements the call jobs make.
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) RentItem(ctx context.Context, renterAddress, itemID, startDate string, days int) (*domain.Rental, domain.RentalQuote, error) {
	panic("not used by jobs")
}
func (m *MockRentalService) GetRental(ctx context.Context, address, rentalID string) (*domain.Rental, error) {
	panic("not used by jobs")
}
func (m *MockRentalService) ListRentals(ctx context.Context, address string, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	panic("not used by jobs")
}
func (m *MockRentalService) ListLendings(ctx context.Context, address string, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	panic("not used by jobs")
}
func (m *MockRentalService) ReturnItem(ctx context.Context, address, rentalID string) (*domain.Rental, decimal.Decimal, error) {
	panic("not used by jobs")
}
func (m *MockRentalService) ProcessDailyPayment(ctx context.Context, rentalID string) (*domain.Rental, decimal.Decimal, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(decimal.Decimal), args.Error(2)
	}
	return args.Get(0).(*domain.Rental), args.Get(1).(decimal.Decimal), args.Error(2)
}

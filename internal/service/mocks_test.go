package service

import (
	"context"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/repository"
	"fashionswap-backend/internal/settlement"
)

// MockListingRepo
type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepo) SetAvailable(ctx context.Context, id string, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}
func (m *MockListingRepo) Search(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Listing), args.Get(1).(int32), args.Error(2)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
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
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
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

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) LockEscrow(ctx context.Context, req settlement.EscrowRequest) (*settlement.Receipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.Receipt), args.Error(1)
}
func (m *MockGateway) Transfer(ctx context.Context, req settlement.TransferRequest) (*settlement.Receipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.Receipt), args.Error(1)
}
func (m *MockGateway) ReleaseDeposit(ctx context.Context, req settlement.TransferRequest) (*settlement.Receipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.Receipt), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalNotification(ctx context.Context, email, ownerName, itemName string, quote domain.RentalQuote, start, end time.Time) error {
	args := m.Called(ctx, email, ownerName, itemName, quote, start, end)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnConfirmation(ctx context.Context, email, renterName, itemName string, refund decimal.Decimal) error {
	args := m.Called(ctx, email, renterName, itemName, refund)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueReminder(ctx context.Context, email, renterName, itemName string, endDate time.Time, daysOverdue int) error {
	args := m.Called(ctx, email, renterName, itemName, endDate, daysOverdue)
	return args.Error(0)
}

type mockMailSender struct {
	mock.Mock
}

func (m *mockMailSender) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rest.Response), args.Error(1)
}

type mockMessageSender struct {
	mock.Mock
}

func (m *mockMessageSender) Send(ctx context.Context, message *messaging.Message) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

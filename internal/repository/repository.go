package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"fashionswap-backend/internal/domain"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	// SetAvailable flips the availability flag. It returns ErrConflict when
	// the listing already has the requested value.
	SetAvailable(ctx context.Context, id string, available bool) error
	Search(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, int32, error)
}

// RentalQuery selects a page of a party's rentals. Status is matched the
// same way utils.DeriveStatus computes it at Now; empty matches all.
type RentalQuery struct {
	Address  string
	Status   domain.RentalStatus
	Now      time.Time
	Page     int32
	PageSize int32
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	// Update persists the mutable fields, status and total paid, only if the
	// stored rental is not completed and still has paidBefore paid. Otherwise
	// it returns ErrConflict and writes nothing.
	Update(ctx context.Context, rental *domain.Rental, paidBefore decimal.Decimal) error
	ListByRenter(ctx context.Context, q RentalQuery) ([]domain.Rental, int32, error)
	ListByOwner(ctx context.Context, q RentalQuery) ([]domain.Rental, int32, error)
	// ListOpen pages through non-completed rentals ordered by ID, starting
	// after afterID.
	ListOpen(ctx context.Context, afterID string, limit int) ([]domain.Rental, error)
}

type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.UserProfile) error
	GetByAddress(ctx context.Context, address string) (*domain.UserProfile, error)
	GetStats(ctx context.Context, address string) (*domain.ProfileStats, error)
}
